package commandset

import "github.com/rbright/cmdgram/internal/grammar"

// Built-in set names.
const (
	DemoName    = "demo"
	LabeledName = "label"
)

// Demo returns the flat phonetic-alphabet set with control phrases.
func Demo() Static {
	return Static{
		SetName: DemoName,
		CommandList: []string{
			"ALPHA", "BRAVO", "CHARLIE", "DELTA", "ECHO", "FOXTROT", "GOLF", "HOTEL", "INDIA",
			"JULIET", "KILO", "LIMA", "MIKE", "NOVEMBER", "OSCAR", "PAPA", "QUEBEC", "ROMEO", "SIERRA",
			"TANGO", "UNIFORM", "VICTOR", "WHISKEY", "XRAY", "YANKEE", "ZULU", "KWA BEK", "KEI BEK",
			"SWITCH GRAMMAR", "STOP SPEAR", "SWITCH LABEL GRAMMAR",
		},
		Mapping: map[string]string{
			"KWA BEK": "QUEBEC",
			"KEI BEK": "QUEBEC",
		},
	}
}

// Labeled returns the parameterized set exercising user-defined and reserved labels.
func Labeled() Static {
	return Static{
		SetName: LabeledName,
		CommandList: []string{
			"I.have.a.$pet",
			"($action1 light)|$action2",
			"My $pet weight 24.5 lb",
			"Her $vehicle values $integer dollars",
			"CLE stands for cleveland",
			"STOP SPEAR",
		},
		LabelDefs: grammar.NewLabelMap(
			grammar.Label{Name: "pet", Substitutions: []string{"dog", "cat", "rabbit", "bird"}},
			grammar.Label{Name: "vehicle", Substitutions: []string{"bicycle", "ship", "car", "plane"}},
			grammar.Label{Name: "action1", Substitutions: []string{"turn on", "turn off"}},
			grammar.Label{Name: "action2", Substitutions: []string{"volumn up", "volumn off"}},
		),
	}
}
