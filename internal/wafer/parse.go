package wafer

// ParseFile loads, resolves, and extracts a wafer CSV in one step.
// It returns the resolved layout (for the declared item names) along
// with the failures.
func ParseFile(path string, metadataRows int, charset string) (*Layout, []Failure, error) {
	table, err := Load(path, charset)
	if err != nil {
		return nil, nil, err
	}
	layout, err := Resolve(table, metadataRows)
	if err != nil {
		return nil, nil, err
	}
	return layout, Extract(layout), nil
}
