package model

// TrainingData is the structured form of a merchant's free-text
// training material. RawText always retains the original source.
type TrainingData struct {
	ProductInfo string
	SalesFlow   []SalesStep
	Style       CommunicationProfile
	FAQs        []FAQ
	RawText     string
}

// SalesStep is one stage of the merchant's sales flow
type SalesStep struct {
	Step        int
	Name        string
	Description string
	Triggers    []string
}

// CommunicationProfile describes how the agent should write
type CommunicationProfile struct {
	Tone          string
	Language      string
	UseEmoji      bool
	Abbreviations []string
}

// FAQ is a canned question/answer pair
type FAQ struct {
	Question string
	Answer   string
}
