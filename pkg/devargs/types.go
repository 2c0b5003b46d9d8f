package devargs

// Format identifies the encoding of a device-argument file.
type Format int

const (
	// FormatAuto detects the format from the file name or content.
	FormatAuto Format = iota
	// FormatYAML is a YAML document.
	FormatYAML
	// FormatTOML is a TOML document.
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "auto"
	}
}

// Device is one device entry.
type Device struct {
	// Name identifies the device. Names are unique within a file.
	Name string `yaml:"name" toml:"name"`

	// Args is the kvargs argument string.
	Args string `yaml:"args" toml:"args"`

	// ValidKeys is the allow-list. Nil accepts every key.
	ValidKeys []string `yaml:"valid_keys" toml:"valid_keys"`

	// ValidEnds lists terminator bytes for Args.
	ValidEnds string `yaml:"valid_ends,omitempty" toml:"valid_ends,omitempty"`

	// LineNumber is the line the entry starts on (YAML only, 0 if unknown).
	LineNumber int `yaml:"-" toml:"-"`
}

// File is a parsed device-argument file.
type File struct {
	Devices    []Device `yaml:"devices" toml:"devices"`
	Format     Format   `yaml:"-" toml:"-"`
	SourceFile string   `yaml:"-" toml:"-"`
}

// Device returns the device with the given name.
func (f *File) Device(name string) (Device, bool) {
	for _, d := range f.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}
