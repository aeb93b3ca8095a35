package export

// Category is a marketplace category usable for draft listings.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ParentName string `json:"parentName,omitempty"`
}

// Condition is a marketplace condition id with its meaning.
type Condition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ComputerCategories lists the marketplace categories the intake UI offers
// for refurbished computer hardware.
var ComputerCategories = []Category{
	{ID: "179", Name: "Desktop Computers", ParentName: "Computers/Tablets & Networking"},
	{ID: "175672", Name: "Laptops & Netbooks", ParentName: "Computers/Tablets & Networking"},
	{ID: "80053", Name: "Monitors", ParentName: "Computers/Tablets & Networking"},
	{ID: "171957", Name: "All-In-One Desktops", ParentName: "Computers/Tablets & Networking"},
	{ID: "175673", Name: "PC Laptops & Netbooks", ParentName: "Laptops & Netbooks"},
	{ID: "111418", Name: "Apple Laptops", ParentName: "Laptops & Netbooks"},
	{ID: "171485", Name: "2-in-1 Laptops", ParentName: "Laptops & Netbooks"},
	{ID: "31530", Name: "Computer Components & Parts", ParentName: "Computers/Tablets & Networking"},
	{ID: "16145", Name: "CPUs/Processors", ParentName: "Computer Components & Parts"},
	{ID: "170083", Name: "Memory (RAM)", ParentName: "Computer Components & Parts"},
	{ID: "175669", Name: "Solid State Drives", ParentName: "Drives, Storage & Blank Media"},
	{ID: "56083", Name: "Hard Drives (HDD, SSD & NAS)", ParentName: "Drives, Storage & Blank Media"},
	{ID: "27386", Name: "Graphics/Video Cards", ParentName: "Computer Components & Parts"},
	{ID: "1244", Name: "Motherboards", ParentName: "Computer Components & Parts"},
	{ID: "42017", Name: "Power Supplies", ParentName: "Computer Components & Parts"},
	{ID: "131486", Name: "Computer Cases", ParentName: "Computer Components & Parts"},
	{ID: "165", Name: "Keyboards & Mice", ParentName: "Computers/Tablets & Networking"},
	{ID: "3676", Name: "Keyboards", ParentName: "Keyboards & Mice"},
	{ID: "23160", Name: "Mice, Trackballs & Touchpads", ParentName: "Keyboards & Mice"},
	{ID: "182094", Name: "Docking Stations", ParentName: "Laptop & Desktop Accessories"},
	{ID: "31534", Name: "Laptop Batteries", ParentName: "Laptop & Desktop Accessories"},
	{ID: "31519", Name: "Laptop Power Adapters/Chargers", ParentName: "Laptop & Desktop Accessories"},
	{ID: "171961", Name: "Tablets & eBook Readers", ParentName: "Computers/Tablets & Networking"},
	{ID: "176972", Name: "Android Tablets", ParentName: "Tablets & eBook Readers"},
	{ID: "73839", Name: "Networking Products", ParentName: "Computers/Tablets & Networking"},
	{ID: "11176", Name: "Routers", ParentName: "Networking Products"},
	{ID: "175709", Name: "Switches & Hubs", ParentName: "Networking Products"},
	{ID: "44995", Name: "Printers", ParentName: "Computers/Tablets & Networking"},
	{ID: "19303", Name: "Scanners", ParentName: "Computers/Tablets & Networking"},
	{ID: "4626", Name: "Servers", ParentName: "Enterprise Networking, Servers"},
	{ID: "175698", Name: "Server Memory (RAM)", ParentName: "Enterprise Networking, Servers"},
	{ID: "175699", Name: "Server Hard Drives", ParentName: "Enterprise Networking, Servers"},
	{ID: "58058", Name: "USB Flash Drives", ParentName: "Drives, Storage & Blank Media"},
	{ID: "86722", Name: "Webcams", ParentName: "Computers/Tablets & Networking"},
	{ID: "162497", Name: "Computer Cables & Connectors", ParentName: "Computers/Tablets & Networking"},
}

// ConditionIDs lists the marketplace condition codes.
var ConditionIDs = []Condition{
	{ID: "1000", Name: "New", Description: "A brand-new, unused, unopened, undamaged item in its original packaging"},
	{ID: "1500", Name: "New other", Description: "A new, unused item with no signs of wear. May be missing original packaging or tags."},
	{ID: "2000", Name: "Certified - Refurbished", Description: "Professionally restored to working order by a manufacturer-approved vendor."},
	{ID: "2500", Name: "Seller refurbished", Description: "The item has been restored to working order by the eBay seller."},
	{ID: "3000", Name: "Used", Description: "An item that has been used previously. May have some signs of cosmetic wear."},
	{ID: "4000", Name: "Very Good", Description: "An item that is used but still in very good condition. No damage to the item itself."},
	{ID: "5000", Name: "Good", Description: "An item in good working order but that may show signs of wear."},
	{ID: "6000", Name: "Acceptable", Description: "An item with obvious wear, but still fully operational and functional."},
	{ID: "7000", Name: "For parts or not working", Description: "An item that does not function as intended and is not fully operational."},
}

// CategoryName resolves a category id to its display name, falling back
// to the id itself.
func CategoryName(id string) string {
	for _, c := range ComputerCategories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}

// ConditionName resolves a condition id to its display name, falling back
// to the id itself.
func ConditionName(id string) string {
	for _, c := range ConditionIDs {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
