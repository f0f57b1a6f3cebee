package nrfjprog

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// DeviceVersion is the identifier printed by nrfjprog --deviceversion, for
// example NRF52840_xxAA_REV2.
type DeviceVersion struct {
	Family string   `parser:"@Word"`
	Parts  []string `parser:"( Sep @Word? )*"`
}

// Variant returns the part following the family, e.g. "xxAA".
func (v *DeviceVersion) Variant() string {
	if len(v.Parts) == 0 {
		return ""
	}
	return v.Parts[0]
}

// Revision returns the trailing part, e.g. "REV2", when there is one past
// the variant.
func (v *DeviceVersion) Revision() string {
	if len(v.Parts) < 2 {
		return ""
	}
	return v.Parts[len(v.Parts)-1]
}

func (v *DeviceVersion) String() string {
	return strings.Join(append([]string{v.Family}, v.Parts...), "_")
}

var versionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^_\s]+`},
	{Name: "Sep", Pattern: `_`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var versionParser = participle.MustBuild[DeviceVersion](
	participle.Lexer(versionLexer),
	participle.Elide("Whitespace"),
)

// ParseDeviceVersion parses the output of nrfjprog --deviceversion. Only the
// first line is read; newer tools print firmware warnings below it.
func ParseDeviceVersion(s string) (*DeviceVersion, error) {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return versionParser.ParseString("", line)
}

// ParseFamily returns the chip family (the token before the first
// underscore) of a device version string, or "" if it cannot be parsed.
func ParseFamily(s string) string {
	v, err := ParseDeviceVersion(s)
	if err != nil {
		return ""
	}
	return v.Family
}
