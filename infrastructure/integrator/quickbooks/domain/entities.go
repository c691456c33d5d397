package domain

// Wire shapes for the QuickBooks Online query API. Field extraction from
// these raw records happens once, in the integrator service; nothing past
// that boundary sees them.

type QueryResponse struct {
	QueryResponse struct {
		Invoice       []Invoice      `json:"Invoice"`
		JournalEntry  []JournalEntry `json:"JournalEntry"`
		DelayedCharge []Charge       `json:"Charge"`
		Account       []Account      `json:"Account"`
		StartPosition int            `json:"startPosition"`
		MaxResults    int            `json:"maxResults"`
		TotalCount    int            `json:"totalCount"`
	} `json:"QueryResponse"`
	Fault *Fault `json:"Fault,omitempty"`
	Time  string `json:"time"`
}

type Fault struct {
	Error []FaultError `json:"Error"`
	Type  string       `json:"type"`
}

type FaultError struct {
	Message string `json:"Message"`
	Detail  string `json:"Detail"`
	Code    string `json:"code"`
}

type Ref struct {
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
}

type Invoice struct {
	ID          string  `json:"Id"`
	DocNumber   string  `json:"DocNumber"`
	TxnDate     string  `json:"TxnDate"`
	DueDate     string  `json:"DueDate,omitempty"`
	TotalAmt    float64 `json:"TotalAmt"`
	Balance     float64 `json:"Balance"`
	CustomerRef Ref     `json:"CustomerRef"`
	Line        []Line  `json:"Line"`
}

type Line struct {
	ID                     string                  `json:"Id,omitempty"`
	Amount                 float64                 `json:"Amount"`
	Description            string                  `json:"Description,omitempty"`
	DetailType             string                  `json:"DetailType"`
	SalesItemLineDetail    *SalesItemLineDetail    `json:"SalesItemLineDetail,omitempty"`
	JournalEntryLineDetail *JournalEntryLineDetail `json:"JournalEntryLineDetail,omitempty"`
}

type SalesItemLineDetail struct {
	ItemRef     Ref    `json:"ItemRef"`
	ServiceDate string `json:"ServiceDate,omitempty"`
}

type JournalEntryLineDetail struct {
	PostingType string `json:"PostingType"` // Debit or Credit; occasionally absent in source data
	AccountRef  Ref    `json:"AccountRef"`
}

type JournalEntry struct {
	ID          string `json:"Id"`
	DocNumber   string `json:"DocNumber"`
	TxnDate     string `json:"TxnDate"`
	PrivateNote string `json:"PrivateNote,omitempty"`
	Line        []Line `json:"Line"`
}

type Charge struct {
	ID          string  `json:"Id"`
	TxnDate     string  `json:"TxnDate"`
	ServiceDate string  `json:"ServiceDate,omitempty"`
	TotalAmt    float64 `json:"TotalAmt"`
	Balance     float64 `json:"Balance"`
	CustomerRef Ref     `json:"CustomerRef"`
	Billed      bool    `json:"Billed,omitempty"`
}

type Account struct {
	ID             string  `json:"Id"`
	Name           string  `json:"Name"`
	AcctNum        string  `json:"AcctNum,omitempty"`
	Classification string  `json:"Classification"`
	AccountType    string  `json:"AccountType"`
	CurrentBalance float64 `json:"CurrentBalance"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}
