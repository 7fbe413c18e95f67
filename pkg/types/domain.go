package types

// Model describes a probabilistic model discoverable from a spec file on disk.
type Model struct {
	// Stable identifier for the model.
	// example: eight-schools
	ID string `json:"id" example:"eight-schools"`
	// Human-friendly name.
	// example: Eight Schools (normal mean)
	Name string `json:"name" example:"Eight Schools (normal mean)"`
	// Absolute path to the model spec file on disk.
	// example: /home/user/models/eight_schools.toml
	Path string `json:"path" example:"/home/user/models/eight_schools.toml"`
	// Model family (normal, linreg, logreg, funnel, external).
	// example: normal
	Family string `json:"family" example:"normal"`
	// Latent dimension; 0 means derived from the dataset at build time.
	// example: 1
	Dim int `json:"dim,omitempty" example:"1"`
	// Absolute path to the observed dataset, if the family uses one.
	// example: /home/user/models/eight_schools.csv
	DatasetPath string `json:"dataset_path,omitempty" example:"/home/user/models/eight_schools.csv"`
}
