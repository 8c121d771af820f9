package config

// Extfile is the on-disk schema of the extension.yaml manifest.
type Extfile struct {
	Name        string      `yaml:"name"`
	Version     string      `yaml:"version"`
	Description string      `yaml:"description"`
	Readme      string      `yaml:"readme"`
	Sources     []string    `yaml:"sources"`
	Engine      EngineDTO   `yaml:"engine"`
	BuildDir    string      `yaml:"buildDir"`
	Options     OptionsDTO  `yaml:"options"`
}

// EngineDTO describes the embedded engine in the manifest.
type EngineDTO struct {
	Root    string   `yaml:"root"`
	Library string   `yaml:"library"`
	Exclude []string `yaml:"exclude"`
}

// OptionsDTO holds the default build options in the manifest.
type OptionsDTO struct {
	DynamicLinking  bool `yaml:"dynamicLinking"`
	EnableMagic     bool `yaml:"enableMagic"`
	EnableCuckoo    bool `yaml:"enableCuckoo"`
	EnableProfiling bool `yaml:"enableProfiling"`
}
