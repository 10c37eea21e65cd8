package model

// ResultType is a 32-bit tagged value: low 4 bits select a template within
// its class, bits 4-6 select exactly one class, and bits 10-12 carry export
// features. See spec §3 for the bit layout.
type ResultType uint32

const (
	classTemplate = 1 << 4
	classStateful = 1 << 5
	classDerive   = 1 << 6

	featureExportContent = 1 << 10
	featureDevicePrivate = 1 << 11
	featureAlternate     = 1 << 12

	templateSelectorMask = 0xF
)

// Canonical result types.
const (
	None ResultType = 0

	TemplateMaximum ResultType = classTemplate | 0x0
	TemplateLong    ResultType = classTemplate | 0x1
	TemplateMedium  ResultType = classTemplate | 0x2
	TemplateShort   ResultType = classTemplate | 0x3
	TemplateBasic   ResultType = classTemplate | 0x4
	TemplatePIN     ResultType = classTemplate | 0x5
	TemplateName    ResultType = classTemplate | 0xE
	TemplatePhrase  ResultType = classTemplate | 0xF

	StatePersonal ResultType = classStateful | featureExportContent | 0x0
	StateDevice   ResultType = classStateful | featureDevicePrivate | 0x1

	DeriveKey ResultType = classDerive | featureAlternate | 0x0
)

// Class reports which of the three mutually exclusive branches a result
// type belongs to.
type Class uint8

const (
	ClassNone Class = iota
	ClassTemplate
	ClassStateful
	ClassDerive
)

func (rt ResultType) Class() Class {
	switch {
	case rt&classTemplate != 0:
		return ClassTemplate
	case rt&classStateful != 0:
		return ClassStateful
	case rt&classDerive != 0:
		return ClassDerive
	default:
		return ClassNone
	}
}

func (rt ResultType) Selector() uint32 {
	return uint32(rt) & templateSelectorMask
}

func (rt ResultType) ExportContent() bool { return rt&featureExportContent != 0 }
func (rt ResultType) DevicePrivate() bool { return rt&featureDevicePrivate != 0 }
func (rt ResultType) Alternate() bool     { return rt&featureAlternate != 0 }

var resultTypeNames = map[ResultType]string{
	None:            "none",
	TemplateMaximum: "Maximum",
	TemplateLong:    "Long",
	TemplateMedium:  "Medium",
	TemplateShort:   "Short",
	TemplateBasic:   "Basic",
	TemplatePIN:     "PIN",
	TemplateName:    "Name",
	TemplatePhrase:  "Phrase",
	StatePersonal:   "Personal",
	StateDevice:     "Device",
	DeriveKey:       "Key",
}

var resultTypeAbbreviations = map[ResultType]string{
	TemplateMaximum: "X",
	TemplateLong:    "L",
	TemplateMedium:  "M",
	TemplateShort:   "S",
	TemplateBasic:   "B",
	TemplatePIN:     "P",
	TemplateName:    "N",
	TemplatePhrase:  "A",
	StatePersonal:   "P",
	StateDevice:     "D",
	DeriveKey:       "K",
}

func (rt ResultType) String() string {
	if name, ok := resultTypeNames[rt]; ok {
		return name
	}
	return "unknown"
}

// Abbreviation returns the single-letter CLI-facing shorthand for rt, or
// the empty string if rt has none.
func (rt ResultType) Abbreviation() string {
	return resultTypeAbbreviations[rt]
}
