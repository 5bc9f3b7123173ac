package model

// FAQEntry is a single question/answer pair shown in the FAQ panel.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
