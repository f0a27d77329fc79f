package gcp

import (
	"testing"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/identityverification/internal/verification"
)

func formField(name, value string) *documentaipb.Document_Page_FormField {
	return &documentaipb.Document_Page_FormField{
		FieldName:  &documentaipb.Document_Page_Layout{TextAnchor: &documentaipb.Document_TextAnchor{Content: name}},
		FieldValue: &documentaipb.Document_Page_Layout{TextAnchor: &documentaipb.Document_TextAnchor{Content: value}},
	}
}

func TestFormPages(t *testing.T) {
	doc := &documentaipb.Document{
		Pages: []*documentaipb.Document_Page{
			{FormFields: []*documentaipb.Document_Page_FormField{
				formField("Name\n", "Jill\nHarmon"),
				formField("Date of Birth", "November 11, 1962"),
			}},
			{FormFields: []*documentaipb.Document_Page_FormField{
				{FieldName: &documentaipb.Document_Page_Layout{}},
			}},
		},
	}

	pages := FormPages(doc)

	require.Len(t, pages, 2)
	assert.Equal(t, []verification.Field{
		{Name: "Name\n", Value: "Jill\nHarmon"},
		{Name: "Date of Birth", Value: "November 11, 1962"},
	}, pages[0].Fields)
	assert.Equal(t, []verification.Field{{}}, pages[1].Fields, "missing anchors become empty text")
}

func TestFormPages_NilDocument(t *testing.T) {
	assert.Empty(t, FormPages(nil))
}

func TestFraudSignals(t *testing.T) {
	doc := &documentaipb.Document{
		Entities: []*documentaipb.Document_Entity{
			{
				Type:            verification.DefaultIdentitySignalType,
				NormalizedValue: &documentaipb.Document_Entity_NormalizedValue{Text: "PASS"},
			},
			{Type: "fraud_signals_suspicious_words"},
		},
	}

	assert.Equal(t, []verification.FraudSignal{
		{Type: verification.DefaultIdentitySignalType, NormalizedValue: "PASS"},
		{Type: "fraud_signals_suspicious_words"},
	}, FraudSignals(doc))
}

func TestProcessorName(t *testing.T) {
	assert.Equal(t, "projects/p/locations/us/processors/abc", ProcessorName("p", "us", "abc"))
}
