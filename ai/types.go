package ai

// CollaborationNames defines the valid collaboration-type labels an intent
// extractor may return. They mirror core.CollaborationType.
var CollaborationNames = []string{
	"co-founder",
	"mentor",
	"investor",
	"collaborator",
	"other",
}
