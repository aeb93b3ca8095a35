package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

// FieldPhotos is the special mapping field that joins photo URLs with a
// pipe, the marketplace multi-photo convention.
const FieldPhotos = "photos"

// fieldAccessors is the closed set of item fields a mapping may reference.
// Profiles naming anything else are rejected at creation time instead of
// silently emitting empty columns.
var fieldAccessors = map[string]func(*model.ItemWithPhotos) string{
	"sku":                     func(i *model.ItemWithPhotos) string { return i.SKU },
	"status":                  func(i *model.ItemWithPhotos) string { return i.Status },
	"intakeDate":              func(i *model.ItemWithPhotos) string { return i.IntakeDate.Format(time.RFC3339) },
	"source":                  func(i *model.ItemWithPhotos) string { return i.Source },
	"sourceLocation":          func(i *model.ItemWithPhotos) string { return i.SourceLocation },
	"dropoffType":             func(i *model.ItemWithPhotos) string { return i.DropoffType },
	"category":                func(i *model.ItemWithPhotos) string { return i.Category },
	"powerTest":               func(i *model.ItemWithPhotos) string { return formatBoolPtr(i.PowerTest) },
	"intakeNotes":             func(i *model.ItemWithPhotos) string { return i.IntakeNotes },
	"brand":                   func(i *model.ItemWithPhotos) string { return i.Brand },
	"model":                   func(i *model.ItemWithPhotos) string { return i.Model },
	"cpu":                     func(i *model.ItemWithPhotos) string { return i.CPU },
	"ram":                     func(i *model.ItemWithPhotos) string { return i.RAM },
	"storageType":             func(i *model.ItemWithPhotos) string { return i.StorageType },
	"storageSize":             func(i *model.ItemWithPhotos) string { return i.StorageSize },
	"batteryHealth":           func(i *model.ItemWithPhotos) string { return i.BatteryHealth },
	"chargerIncluded":         func(i *model.ItemWithPhotos) string { return i.ChargerIncluded },
	"screenResolution":        func(i *model.ItemWithPhotos) string { return i.ScreenResolution },
	"os":                      func(i *model.ItemWithPhotos) string { return i.OS },
	"gpu":                     func(i *model.ItemWithPhotos) string { return i.GPU },
	"benchTested":             func(i *model.ItemWithPhotos) string { return formatBoolPtr(i.BenchTested) },
	"testTool":                func(i *model.ItemWithPhotos) string { return i.TestTool },
	"magicOctopusRun":         func(i *model.ItemWithPhotos) string { return strconv.FormatBool(i.MagicOctopusRun) },
	"benchNotes":              func(i *model.ItemWithPhotos) string { return i.BenchNotes },
	"testNotes":               func(i *model.ItemWithPhotos) string { return i.TestNotes },
	"dataDestruction":         func(i *model.ItemWithPhotos) string { return formatBoolPtr(i.DataDestruction) },
	"ebayCategoryId":          func(i *model.ItemWithPhotos) string { return i.EbayCategoryID },
	"ebayConditionId":         func(i *model.ItemWithPhotos) string { return i.EbayConditionID },
	"listingFormat":           func(i *model.ItemWithPhotos) string { return i.ListingFormat },
	"listPrice":               func(i *model.ItemWithPhotos) string { return i.ListPrice },
	"researchPrice":           func(i *model.ItemWithPhotos) string { return i.ResearchPrice },
	"quantity":                func(i *model.ItemWithPhotos) string { return strconv.Itoa(i.Quantity) },
	"upc":                     func(i *model.ItemWithPhotos) string { return i.UPC },
	"storageLocation":         func(i *model.ItemWithPhotos) string { return i.StorageLocation },
	"listingTitle":            func(i *model.ItemWithPhotos) string { return i.ListingTitle },
	"listingDescription":      func(i *model.ItemWithPhotos) string { return i.ListingDescription },
	"sourceVendor":            func(i *model.ItemWithPhotos) string { return i.SourceVendor },
	"intakeConfirmedBy":       func(i *model.ItemWithPhotos) string { return formatInt64Ptr(i.IntakeConfirmedBy) },
	"processingConfirmedBy":   func(i *model.ItemWithPhotos) string { return formatInt64Ptr(i.ProcessingConfirmedBy) },
	"listingConfirmedBy":      func(i *model.ItemWithPhotos) string { return formatInt64Ptr(i.ListingConfirmedBy) },
	"reviewConfirmedBy":       func(i *model.ItemWithPhotos) string { return formatInt64Ptr(i.ReviewConfirmedBy) },
	"isDrafted":               func(i *model.ItemWithPhotos) string { return strconv.FormatBool(i.IsDrafted) },
	"isReviewed":              func(i *model.ItemWithPhotos) string { return strconv.FormatBool(i.IsReviewed) },
	"isTemplateDrafted":       func(i *model.ItemWithPhotos) string { return strconv.FormatBool(i.IsTemplateDrafted) },
	"isSecondReviewCompleted": func(i *model.ItemWithPhotos) string { return strconv.FormatBool(i.IsSecondReviewCompleted) },
}

// KnownField reports whether name is a valid mapping field reference.
func KnownField(name string) bool {
	if name == FieldPhotos {
		return true
	}
	_, ok := fieldAccessors[name]
	return ok
}

func formatBoolPtr(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatInt64Ptr(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

// joinPhotoURLs joins an item's photo URLs with a pipe, in stored sort order.
func joinPhotoURLs(item *model.ItemWithPhotos) string {
	urls := make([]string, len(item.Photos))
	for i, p := range item.Photos {
		urls[i] = p.URL
	}
	return strings.Join(urls, "|")
}
