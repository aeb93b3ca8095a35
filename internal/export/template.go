package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

// ErrNoEligibleItems is returned when the fixed-template export finds no
// item with both a category id and a condition id. The returned result
// still carries the skip accounting so callers can report it.
var ErrNoEligibleItems = errors.New("no eligible items for draft export")

// draftInfoLines are the literal leading rows the marketplace bulk-upload
// tool expects. They are part of the file format, not derived from data.
var draftInfoLines = []string{
	`#INFO,Version=0.0.2,Template= eBay-draft-listings-template_US,,,,,,,,`,
	`#INFO Action and Category ID are required fields. 1) Set Action to Draft 2) Please find the category ID for your listings here: https://pages.ebay.com/sellerinformation/news/categorychanges.html,,,,,,,,,,`,
	`"#INFO After you've successfully uploaded your draft from the Seller Hub Reports tab, complete your drafts to active listings here: https://www.ebay.com/sh/lst/drafts",,,,,,,,,,`,
	`#INFO,,,,,,,,,,`,
}

// draftHeader is the fixed 11-column schema of the draft-listing template.
var draftHeader = []string{
	"Action(SiteID=US|Country=US|Currency=USD|Version=1193|CC=UTF-8)",
	"Custom label (SKU)",
	"Category ID",
	"Title",
	"UPC",
	"Price",
	"Quantity",
	"Item photo URL",
	"Condition ID",
	"Description",
	"Format",
}

// maxTitleLen is the marketplace's hard listing-title limit.
const maxTitleLen = 80

// DraftResult is the output of a fixed-template export: the CSV text plus
// the accounting the caller reports ("N exported, M skipped").
type DraftResult struct {
	CSV         string   `json:"csv"`
	Exported    int      `json:"exported"`
	Skipped     int      `json:"skipped"`
	SkippedSKUs []string `json:"skippedSkus"`
}

// GenerateDraftCSV produces the marketplace draft-listing CSV. Items
// missing a category id or condition id are skipped and counted, not
// failed; only an entirely empty eligible set is an error.
func GenerateDraftCSV(items []model.ItemWithPhotos) (*DraftResult, error) {
	result := &DraftResult{SkippedSKUs: []string{}}

	rows := make([][]string, 0, len(items))
	for i := range items {
		item := &items[i]
		if item.EbayCategoryID == "" || item.EbayConditionID == "" {
			result.Skipped++
			result.SkippedSKUs = append(result.SkippedSKUs, item.SKU)
			continue
		}
		rows = append(rows, draftRow(item))
		result.Exported++
	}

	body, err := writeDocument(draftHeader, rows)
	if err != nil {
		return nil, err
	}
	result.CSV = strings.Join(draftInfoLines, "\n") + "\n" + body

	if result.Exported == 0 {
		return result, ErrNoEligibleItems
	}
	return result, nil
}

func draftRow(item *model.ItemWithPhotos) []string {
	title := item.ListingTitle
	if title == "" {
		title = buildListingTitle(item)
	}

	description := item.ListingDescription
	if description == "" {
		description = buildListingDescription(item)
	}

	quantity := "1"
	if item.Quantity > 0 {
		quantity = strconv.Itoa(item.Quantity)
	}

	format := item.ListingFormat
	if format == "" {
		format = model.FormatFixedPrice
	}

	return []string{
		"Draft",
		item.SKU,
		item.EbayCategoryID,
		title,
		item.UPC,
		item.ListPrice,
		quantity,
		joinPhotoURLs(item),
		item.EbayConditionID,
		description,
		format,
	}
}

// buildListingTitle synthesizes a title from brand, model and key specs,
// truncated to the marketplace limit. Falls back to the SKU when no
// component is available.
func buildListingTitle(item *model.ItemWithPhotos) string {
	var parts []string

	if item.Brand != "" {
		parts = append(parts, item.Brand)
	}
	if item.Model != "" {
		parts = append(parts, item.Model)
	}
	if item.CPU != "" {
		parts = append(parts, item.CPU)
	}
	if item.RAM != "" {
		parts = append(parts, item.RAM)
	}
	if item.StorageSize != "" && item.StorageType != "" {
		parts = append(parts, item.StorageSize+" "+item.StorageType)
	} else if item.StorageSize != "" {
		parts = append(parts, item.StorageSize)
	}

	if len(parts) == 0 {
		if item.SKU != "" {
			parts = append(parts, item.SKU)
		} else {
			parts = append(parts, "Item")
		}
	}

	title := strings.Join(parts, " ")
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}
	return title
}

// buildListingDescription synthesizes the HTML description: a heading, a
// spec list, then testing and condition notes when present.
func buildListingDescription(item *model.ItemWithPhotos) string {
	var sb strings.Builder

	if item.Brand != "" || item.Model != "" {
		fmt.Fprintf(&sb, "<h3>%s %s</h3>", item.Brand, item.Model)
	}

	sb.WriteString("<p><strong>Specifications:</strong></p>")
	sb.WriteString("<ul>")
	if item.CPU != "" {
		fmt.Fprintf(&sb, "<li>CPU: %s</li>", item.CPU)
	}
	if item.RAM != "" {
		fmt.Fprintf(&sb, "<li>RAM: %s</li>", item.RAM)
	}
	if item.StorageType != "" || item.StorageSize != "" {
		fmt.Fprintf(&sb, "<li>Storage: %s %s</li>", item.StorageSize, item.StorageType)
	}
	if item.BatteryHealth != "" {
		fmt.Fprintf(&sb, "<li>Battery Health: %s</li>", item.BatteryHealth)
	}
	if item.ChargerIncluded != "" {
		fmt.Fprintf(&sb, "<li>Charger Included: %s</li>", item.ChargerIncluded)
	}
	sb.WriteString("</ul>")

	if item.TestNotes != "" || item.BenchNotes != "" {
		sb.WriteString("<p><strong>Testing Notes:</strong></p>")
		fmt.Fprintf(&sb, "<p>%s %s</p>", item.TestNotes, item.BenchNotes)
	}

	if item.IntakeNotes != "" {
		sb.WriteString("<p><strong>Condition Notes:</strong></p>")
		fmt.Fprintf(&sb, "<p>%s</p>", item.IntakeNotes)
	}

	return sb.String()
}
