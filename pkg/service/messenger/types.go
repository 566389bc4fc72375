package messenger

// Webhook event payload as delivered by the Messenger Platform.
// Only the fields the core consumes are modeled.

// Event is the top-level webhook body
type Event struct {
	Object  string  `json:"object"`
	Entries []Entry `json:"entry"`
}

// Entry groups messaging events for one page
type Entry struct {
	PageID    string           `json:"id"`
	Time      int64            `json:"time"`
	Messaging []MessagingEvent `json:"messaging"`
}

// MessagingEvent is one inbound message or postback
type MessagingEvent struct {
	Sender    Principal        `json:"sender"`
	Recipient Principal        `json:"recipient"`
	Timestamp int64            `json:"timestamp"`
	Message   *InboundMessage  `json:"message,omitempty"`
	Postback  *InboundPostback `json:"postback,omitempty"`
}

// Principal identifies a page or a PSID
type Principal struct {
	ID string `json:"id"`
}

// InboundMessage carries text and/or attachments
type InboundMessage struct {
	MID         string              `json:"mid"`
	Text        string              `json:"text"`
	IsEcho      bool                `json:"is_echo"`
	Attachments []InboundAttachment `json:"attachments,omitempty"`
}

// InboundAttachment is a media reference received from the customer
type InboundAttachment struct {
	Type    string `json:"type"`
	Payload struct {
		URL string `json:"url"`
	} `json:"payload"`
}

// InboundPostback is a button press payload
type InboundPostback struct {
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

// Outbound send API request/response shapes

type sendRequest struct {
	Recipient    Principal        `json:"recipient"`
	Message      *outboundMessage `json:"message,omitempty"`
	SenderAction string           `json:"sender_action,omitempty"`
}

type outboundMessage struct {
	Text       string              `json:"text,omitempty"`
	Attachment *outboundAttachment `json:"attachment,omitempty"`
}

type outboundAttachment struct {
	Type    string `json:"type"`
	Payload struct {
		URL        string `json:"url"`
		IsReusable bool   `json:"is_reusable"`
	} `json:"payload"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Error     *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}
