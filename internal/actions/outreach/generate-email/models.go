package generateemail

import "leadflow/internal/models"

type Input struct {
	Lead       models.Lead `json:"lead"`
	Offer      string      `json:"offer,omitempty"`
	Tone       string      `json:"tone,omitempty"`
	SenderName string      `json:"senderName,omitempty"`
}

type Output struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
