package workspace

// Wire types of a workspace document. Field names follow the Structurizr JSON
// export.

type document struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Model       modelDoc `json:"model" yaml:"model"`
	Views       viewsDoc `json:"views" yaml:"views"`
}

type modelDoc struct {
	People          []elementDoc `json:"people" yaml:"people"`
	SoftwareSystems []systemDoc  `json:"softwareSystems" yaml:"softwareSystems"`
}

type elementDoc struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name"`
	Description   string            `json:"description" yaml:"description"`
	URL           string            `json:"url" yaml:"url"`
	Tags          string            `json:"tags" yaml:"tags"`
	Relationships []relationshipDoc `json:"relationships" yaml:"relationships"`
}

type systemDoc struct {
	elementDoc `yaml:",inline"`
	Containers []containerDoc `json:"containers" yaml:"containers"`
}

type containerDoc struct {
	elementDoc `yaml:",inline"`
	Technology string         `json:"technology" yaml:"technology"`
	Components []componentDoc `json:"components" yaml:"components"`
}

type componentDoc struct {
	elementDoc `yaml:",inline"`
	Technology string `json:"technology" yaml:"technology"`
}

type relationshipDoc struct {
	ID            string `json:"id" yaml:"id"`
	SourceID      string `json:"sourceId" yaml:"sourceId"`
	DestinationID string `json:"destinationId" yaml:"destinationId"`
	Description   string `json:"description" yaml:"description"`
	Technology    string `json:"technology" yaml:"technology"`
	Tags          string `json:"tags" yaml:"tags"`
}

type viewsDoc struct {
	SystemContextViews []viewDoc        `json:"systemContextViews" yaml:"systemContextViews"`
	ContainerViews     []viewDoc        `json:"containerViews" yaml:"containerViews"`
	ComponentViews     []viewDoc        `json:"componentViews" yaml:"componentViews"`
	Configuration      configurationDoc `json:"configuration" yaml:"configuration"`
}

type viewDoc struct {
	Key           string   `json:"key" yaml:"key"`
	Title         string   `json:"title" yaml:"title"`
	Elements      []refDoc `json:"elements" yaml:"elements"`
	Relationships []refDoc `json:"relationships" yaml:"relationships"`
}

type refDoc struct {
	ID string `json:"id" yaml:"id"`
}

type configurationDoc struct {
	Styles stylesDoc `json:"styles" yaml:"styles"`
}

type stylesDoc struct {
	Elements []elementStyleDoc `json:"elements" yaml:"elements"`
}

type elementStyleDoc struct {
	Tag        string  `json:"tag" yaml:"tag"`
	Background *string `json:"background" yaml:"background"`
	Color      *string `json:"color" yaml:"color"`
	Shape      string  `json:"shape" yaml:"shape"`
	Width      *int    `json:"width" yaml:"width"`
	Height     *int    `json:"height" yaml:"height"`
	FontSize   *int    `json:"fontSize" yaml:"fontSize"`
}
