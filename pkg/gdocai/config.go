package gdocai

import "errors"

// Config identifies the Document AI processor to use.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// ErrIncompleteConfig is returned when a processor cannot be addressed.
var ErrIncompleteConfig = errors.New("document ai config requires project_id, location and processor_id")

// Validate checks that all fields needed to address the processor are set.
func (c Config) Validate() error {
	if c.ProjectID == "" || c.Location == "" || c.ProcessorID == "" {
		return ErrIncompleteConfig
	}
	return nil
}

// ProcessorName is the resource name of the configured processor.
func (c Config) ProcessorName() string {
	return "projects/" + c.ProjectID + "/locations/" + c.Location + "/processors/" + c.ProcessorID
}
