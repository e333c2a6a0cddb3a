package dist

import (
	"fmt"
	"strings"
)

// Kind selects one of the discrete laws a walk can be driven by.
type Kind int

const (
	Constant Kind = iota
	Binary
	ZetaThree
	ZetaTwo
)

type kindInfo struct {
	name        string
	label       string
	description string
}

var kindTable = map[Kind]kindInfo{
	Constant:  {"constant", "Constant", "always 1"},
	Binary:    {"binary", "Binary", "+10 or -5 with equal probability"},
	ZetaThree: {"zeta3", "Zeta(3)", "signed k with P(k) proportional to 1/k^3"},
	ZetaTwo:   {"zeta2", "Zeta(2)", "signed k with P(k) proportional to 1/k^2"},
}

var kindAliases = map[string]Kind{
	"0":         Constant,
	"1":         Binary,
	"2":         ZetaThree,
	"3":         ZetaTwo,
	"zeta(3)":   ZetaThree,
	"zeta(2)":   ZetaTwo,
	"zetathree": ZetaThree,
	"zetatwo":   ZetaTwo,
}

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Label is the human readable name shown in menus and chart captions.
func (k Kind) Label() string {
	if info, ok := kindTable[k]; ok {
		return info.label
	}
	return k.String()
}

func (k Kind) Description() string { return kindTable[k].description }

func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// Next cycles through the kinds in selector order.
func (k Kind) Next() Kind {
	return Kind((int(k) + 1) % len(kindTable))
}

// Kinds returns every known kind in selector order.
func Kinds() []Kind {
	return []Kind{Constant, Binary, ZetaThree, ZetaTwo}
}

// ParseKind accepts the kind names, a few aliases and the numeric selectors 0..3.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, info := range kindTable {
		if info.name == name {
			return k, nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
