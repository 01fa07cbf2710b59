package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysContactMsg{},
	// Catalog
	&Product{},
}
