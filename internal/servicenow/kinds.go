package servicenow

// Field maps one normalized output key to the raw Table API field it is read
// from. Most fields keep their raw name; timestamps are aliased.
type Field struct {
	Key    string
	Source string
}

// FieldMap is an ordered field selection for one (kind, view) pair. Declaring
// the selection here keeps the output schema stable regardless of what the
// upstream instance returns.
type FieldMap []Field

// Sources returns the raw field names, in declaration order
func (fm FieldMap) Sources() []string {
	sources := make([]string, len(fm))
	for i, f := range fm {
		sources[i] = f.Source
	}
	return sources
}

func f(name string) Field {
	return Field{Key: name, Source: name}
}

// RecordKind describes one ServiceNow record table exposed by the tools:
// where it lives, which fields are searchable, and which fields each view
// returns.
type RecordKind struct {
	Name       string // tool-facing identifier ("incident")
	PluralName string // tool-facing plural ("incidents")
	Label      string // message label ("Incident")
	Plural     string // human plural for messages ("incidents")
	Table      string

	// TextFields are matched by the free-text query and keyword search
	TextFields []string

	// Raw fields backing the equality filters of the list operation
	StateField    string
	AssignedField string
	CategoryField string

	Summary FieldMap // list view
	Detail  FieldMap // get-by-number view
	Compact FieldMap // keyword search view, also sent as sysparm_fields
}

var (
	// Incident is backed by the incident table
	Incident = RecordKind{
		Name:          "incident",
		PluralName:    "incidents",
		Label:         "Incident",
		Plural:        "incidents",
		Table:         "incident",
		TextFields:    []string{"short_description", "description"},
		StateField:    "state",
		AssignedField: "assigned_to",
		CategoryField: "category",
		Summary: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("state"),
			f("priority"), f("assigned_to"), f("category"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
		Detail: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("description"),
			f("state"), f("priority"), f("impact"), f("urgency"),
			f("assigned_to"), f("assignment_group"), f("category"), f("subcategory"),
			{Key: "caller", Source: "caller_id"},
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
		Compact: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("state"), f("priority"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
	}

	// Problem is backed by the problem table
	Problem = RecordKind{
		Name:          "problem",
		PluralName:    "problems",
		Label:         "Problem",
		Plural:        "problems",
		Table:         "problem",
		TextFields:    []string{"short_description", "description"},
		StateField:    "state",
		AssignedField: "assigned_to",
		CategoryField: "category",
		Summary: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("state"),
			f("priority"), f("assigned_to"), f("category"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
		Detail: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("description"),
			f("state"), f("priority"), f("assigned_to"), f("category"), f("subcategory"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
		Compact: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("state"), f("priority"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
	}

	// Knowledge is backed by the kb_knowledge table. Its state lives in
	// workflow_state and its category in kb_category.
	Knowledge = RecordKind{
		Name:          "knowledge_article",
		PluralName:    "knowledge_articles",
		Label:         "Knowledge article",
		Plural:        "knowledge articles",
		Table:         "kb_knowledge",
		TextFields:    []string{"short_description", "text"},
		StateField:    "workflow_state",
		AssignedField: "author",
		CategoryField: "kb_category",
		Summary: FieldMap{
			f("sys_id"), f("number"), f("short_description"),
			{Key: "state", Source: "workflow_state"},
			{Key: "knowledge_base", Source: "kb_knowledge_base"},
			{Key: "category", Source: "kb_category"},
			f("author"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
		Detail: FieldMap{
			f("sys_id"), f("number"), f("short_description"), f("text"),
			{Key: "state", Source: "workflow_state"},
			{Key: "knowledge_base", Source: "kb_knowledge_base"},
			{Key: "category", Source: "kb_category"},
			f("author"), f("published"),
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
		Compact: FieldMap{
			f("sys_id"), f("number"), f("short_description"),
			{Key: "state", Source: "workflow_state"},
			{Key: "created_on", Source: "sys_created_on"},
			{Key: "updated_on", Source: "sys_updated_on"},
		},
	}

	// Kinds lists every exposed record kind
	Kinds = []RecordKind{Incident, Problem, Knowledge}
)

// KindByName resolves a record kind from its tool-facing identifier.
// "knowledge" is accepted as shorthand for "knowledge_article".
func KindByName(name string) (RecordKind, bool) {
	if name == "knowledge" {
		name = Knowledge.Name
	}
	for _, kind := range Kinds {
		if kind.Name == name {
			return kind, true
		}
	}
	return RecordKind{}, false
}
