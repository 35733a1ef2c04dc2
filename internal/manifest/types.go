// Package manifest holds the in-memory model of an application manifest:
// the routes, background functions and tables an app declares.
package manifest

// Route is an HTTP route declared in the manifest.
type Route struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	FunctionName string `json:"functionName"`
}

// Lambda is a background function (event, queue or scheduled handler).
type Lambda struct {
	Name string `json:"name"`
}

// Table is a data table with its declared attributes.
type Table struct {
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
}

// Function maps a deployable function to its source folder.
type Function struct {
	Name   string `json:"name"`
	Folder string `json:"folder"`
}

// Manifest is one version of a parsed manifest. It is treated as immutable:
// updates replace the whole value instead of patching it.
type Manifest struct {
	App       string     `json:"app"`
	Routes    []Route    `json:"routes"`
	Lambdas   []Lambda   `json:"lambdas"`
	Tables    []Table    `json:"tables"`
	Functions []Function `json:"functions"`
}

// Category names one of the three lists the viewer displays.
type Category string

const (
	CategoryRoutes  Category = "routes"
	CategoryLambdas Category = "lambdas"
	CategoryTables  Category = "tables"
)

// Categories lists the displayable categories in display order.
var Categories = []Category{CategoryRoutes, CategoryLambdas, CategoryTables}

// Len returns the number of entries in the given category. A nil manifest
// has no entries.
func (m *Manifest) Len(c Category) int {
	if m == nil {
		return 0
	}
	switch c {
	case CategoryRoutes:
		return len(m.Routes)
	case CategoryLambdas:
		return len(m.Lambdas)
	case CategoryTables:
		return len(m.Tables)
	}
	return 0
}

// normalize replaces nil lists with empty ones so the JSON form always
// carries arrays.
func (m *Manifest) normalize() {
	if m.Routes == nil {
		m.Routes = []Route{}
	}
	if m.Lambdas == nil {
		m.Lambdas = []Lambda{}
	}
	if m.Tables == nil {
		m.Tables = []Table{}
	}
	if m.Functions == nil {
		m.Functions = []Function{}
	}
	for i := range m.Tables {
		if m.Tables[i].Attributes == nil {
			m.Tables[i].Attributes = []string{}
		}
	}
}
