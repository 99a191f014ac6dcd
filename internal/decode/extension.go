package decode

import "fmt"

// Version is a (major, minor) version pair carried by an Extension.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Extension is a static, versioned descriptor for an ISA feature flag.
// Extension values are defined once by extension modules at package
// init time; equality between Extensions is by identity of the
// descriptor (pointer equality), matching spec.md §3.
type Extension struct {
	LongName  string
	ShortName string
	Version   Version
}

var registry = map[string]*Extension{}

// New constructs an Extension descriptor. Extension modules call this
// once, at package scope, to obtain the singleton they reference from
// their registered rules. The descriptor is also recorded under its
// short name so configuration and CLI code can look extensions up by
// the name a user would type.
func New(longName, shortName string, major, minor int) *Extension {
	ext := &Extension{LongName: longName, ShortName: shortName, Version: Version{major, minor}}
	registry[shortName] = ext
	return ext
}

// Lookup finds a registered extension by its short name.
func Lookup(shortName string) (*Extension, bool) {
	ext, ok := registry[shortName]
	return ext, ok
}

// AllExtensions returns every extension registered so far, in no
// particular order. Meaningful only once every extension package's
// init() has run (i.e. after the isa aggregator has been imported).
func AllExtensions() []*Extension {
	out := make([]*Extension, 0, len(registry))
	for _, ext := range registry {
		out = append(out, ext)
	}
	return out
}

func (e *Extension) String() string {
	if e == nil {
		return "<none>"
	}
	return fmt.Sprintf("%s(%s)", e.ShortName, e.Version)
}
