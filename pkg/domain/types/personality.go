package types

// CommunicationStyle classifies how a customer writes
type CommunicationStyle string

const (
	StyleDirect   CommunicationStyle = "direct"
	StylePolite   CommunicationStyle = "polite"
	StyleCasual   CommunicationStyle = "casual"
	StyleFormal   CommunicationStyle = "formal"
	StyleFriendly CommunicationStyle = "friendly"
)

// AllCommunicationStyles returns all valid communication styles
func AllCommunicationStyles() []CommunicationStyle {
	return []CommunicationStyle{
		StyleDirect,
		StylePolite,
		StyleCasual,
		StyleFormal,
		StyleFriendly,
	}
}

// IsValid checks if the communication style is valid
func (s CommunicationStyle) IsValid() bool {
	for _, v := range AllCommunicationStyles() {
		if s == v {
			return true
		}
	}
	return false
}

func (s CommunicationStyle) String() string {
	return string(s)
}

// Tone classifies the emotional coloring of a customer's messages
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
	ToneCurious  Tone = "curious"
	ToneHesitant Tone = "hesitant"
)

// AllTones returns all valid tones
func AllTones() []Tone {
	return []Tone{
		TonePositive,
		ToneNeutral,
		ToneNegative,
		ToneCurious,
		ToneHesitant,
	}
}

// IsValid checks if the tone is valid
func (t Tone) IsValid() bool {
	for _, v := range AllTones() {
		if t == v {
			return true
		}
	}
	return false
}

func (t Tone) String() string {
	return string(t)
}
