package model

import "time"

// Item represents one physical unit of inventory moving through the
// disposition workflow, from intake to a marketplace listing.
type Item struct {
	ID     int64  `json:"id"`
	SKU    string `json:"sku"`
	Status string `json:"status"`

	// Intake fields.
	IntakeDate     time.Time `json:"intakeDate"`
	Source         string    `json:"source,omitempty"`
	SourceLocation string    `json:"sourceLocation,omitempty"`
	DropoffType    string    `json:"dropoffType,omitempty"`
	Category       string    `json:"category,omitempty"`
	PowerTest      *bool     `json:"powerTest,omitempty"`
	IntakeNotes    string    `json:"intakeNotes,omitempty"`

	// Test and spec fields.
	Brand            string `json:"brand,omitempty"`
	Model            string `json:"model,omitempty"`
	CPU              string `json:"cpu,omitempty"`
	RAM              string `json:"ram,omitempty"`
	StorageType      string `json:"storageType,omitempty"`
	StorageSize      string `json:"storageSize,omitempty"`
	BatteryHealth    string `json:"batteryHealth,omitempty"`
	ChargerIncluded  string `json:"chargerIncluded,omitempty"`
	ScreenResolution string `json:"screenResolution,omitempty"`
	OS               string `json:"os,omitempty"`
	GPU              string `json:"gpu,omitempty"`
	BenchTested      *bool  `json:"benchTested,omitempty"`
	TestTool         string `json:"testTool,omitempty"`
	MagicOctopusRun  bool   `json:"magicOctopusRun"`
	BenchNotes       string `json:"benchNotes,omitempty"`
	TestNotes        string `json:"testNotes,omitempty"`
	DataDestruction  *bool  `json:"dataDestruction,omitempty"`

	// Marketplace listing fields. Prices are decimal strings so exports
	// reproduce the entered value byte for byte.
	EbayCategoryID     string `json:"ebayCategoryId,omitempty"`
	EbayConditionID    string `json:"ebayConditionId,omitempty"`
	ListingFormat      string `json:"listingFormat,omitempty"`
	ListPrice          string `json:"listPrice,omitempty"`
	ResearchPrice      string `json:"researchPrice,omitempty"`
	Quantity           int    `json:"quantity"`
	UPC                string `json:"upc,omitempty"`
	StorageLocation    string `json:"storageLocation,omitempty"`
	ListingTitle       string `json:"listingTitle,omitempty"`
	ListingDescription string `json:"listingDescription,omitempty"`
	SourceVendor       string `json:"sourceVendor,omitempty"`

	// Chain of custody: a non-nil value is an attestation by that user
	// that the stage was checked. Nil means not yet confirmed.
	IntakeConfirmedBy     *int64 `json:"intakeConfirmedBy,omitempty"`
	ProcessingConfirmedBy *int64 `json:"processingConfirmedBy,omitempty"`
	ListingConfirmedBy    *int64 `json:"listingConfirmedBy,omitempty"`
	ReviewConfirmedBy     *int64 `json:"reviewConfirmedBy,omitempty"`

	// Workflow flags.
	IsDrafted               bool `json:"isDrafted"`
	IsReviewed              bool `json:"isReviewed"`
	IsTemplateDrafted       bool `json:"isTemplateDrafted"`
	IsSecondReviewCompleted bool `json:"isSecondReviewCompleted"`

	// Metadata.
	CreatedBy  *int64    `json:"createdBy,omitempty"`
	ReviewerID *int64    `json:"reviewerId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ItemWithPhotos is an item together with its photos in display order.
type ItemWithPhotos struct {
	Item
	Photos []Photo `json:"photos"`
}

// Item statuses. Scrap is a terminal side-exit chosen at intake, not part
// of the forward chain.
const (
	StatusIntake     = "intake"
	StatusProcessing = "processing"
	StatusDrafted    = "drafted"
	StatusReview     = "review"
	StatusReady      = "ready"
	StatusListed     = "listed"
	StatusSold       = "sold"
	StatusScrap      = "scrap"
)

// statusFlow maps each status to its successor in the forward chain.
// Sold and scrap have no entry: they are terminal.
var statusFlow = map[string]string{
	StatusIntake:     StatusProcessing,
	StatusProcessing: StatusDrafted,
	StatusDrafted:    StatusReview,
	StatusReview:     StatusReady,
	StatusReady:      StatusListed,
	StatusListed:     StatusSold,
}

// NextStatus returns the successor of the given status. The second return
// value is false for terminal statuses (sold, scrap) and unknown input.
func NextStatus(status string) (string, bool) {
	next, ok := statusFlow[status]
	return next, ok
}

// ValidStatus reports whether s is one of the eight known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusIntake, StatusProcessing, StatusDrafted, StatusReview,
		StatusReady, StatusListed, StatusSold, StatusScrap:
		return true
	}
	return false
}

// IsArchivedStatus reports whether s counts as archived for listing
// filters. Archived means the item has left the working set: it is
// listed, sold, or scrapped.
func IsArchivedStatus(s string) bool {
	return s == StatusListed || s == StatusSold || s == StatusScrap
}

// Listing formats.
const (
	FormatFixedPrice = "FixedPrice"
	FormatAuction    = "Auction"
)
