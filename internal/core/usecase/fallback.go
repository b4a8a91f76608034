package usecase

import "strings"

// Static fallback tables used whenever semantic retrieval, web search, or
// generation is unavailable. Rules are evaluated in fixed order so degraded
// responses are deterministic.

type keywordRule struct {
	keywords []string
	text     string
}

const fallbackContextHeader = "**Nestlé Canada**: Leading food and beverage company with brands like KitKat, Smarties, Aero, Coffee-mate, and Quality Street.\n"

const fallbackContextFooter = "**Company Values**: Good Food, Good Life philosophy, quality ingredients, Canadian manufacturing."

var fallbackContextRules = []keywordRule{
	{
		keywords: []string{"chocolate", "candy", "sweet"},
		text:     "**Chocolate Brands**: KitKat wafer bars, Smarties colorful chocolates, Aero bubbly chocolate, Quality Street assorted chocolates.\n",
	},
	{
		keywords: []string{"coffee", "beverage", "drink"},
		text:     "**Beverages**: Nespresso premium coffee, Coffee-mate creamers, Carnation hot chocolate.\n",
	},
	{
		keywords: []string{"nutrition", "baby", "health"},
		text:     "**Nutrition**: Gerber baby food, Carnation evaporated milk, focus on nutrition science.\n",
	},
	{
		keywords: []string{"sustainability", "environment"},
		text:     "**Sustainability**: Committed to sustainable cocoa sourcing, water stewardship, and carbon footprint reduction.\n",
	},
	{
		keywords: []string{"christmas", "holiday", "gift"},
		text:     "**Holiday Products**: Christmas advent calendars, gift tins, seasonal packaging, perfect for gifting.\n",
	},
}

// FallbackContext assembles static brand context by case-insensitive keyword
// matching. The generic header and footer are always present, so the result
// is never empty.
func FallbackContext(query string) string {
	lower := strings.ToLower(query)

	var b strings.Builder
	b.WriteString(fallbackContextHeader)
	for _, rule := range fallbackContextRules {
		if matchesAny(lower, rule.keywords) {
			b.WriteString(rule.text)
		}
	}
	b.WriteString(fallbackContextFooter)
	return b.String()
}

type urlRule struct {
	keywords []string
	urls     []string
}

var fallbackURLRules = []urlRule{
	{
		keywords: []string{"product", "food", "chocolate", "coffee", "brand"},
		urls: []string{
			"https://www.madewithnestle.ca/brands",
			"https://www.nestle.com/brands",
		},
	},
	{
		keywords: []string{"sustainability", "environment", "cocoa", "farming"},
		urls: []string{
			"https://www.nestle.com/sustainability",
			"https://www.madewithnestle.ca/sustainability",
		},
	},
	{
		keywords: []string{"recipe", "cooking", "meal", "food"},
		urls:     []string{"https://www.madewithnestle.ca/recipes"},
	},
	{
		keywords: []string{"nutrition", "health", "baby", "infant"},
		urls: []string{
			"https://www.nestle.com/nutrition",
			"https://www.gerber.com",
		},
	},
	{
		keywords: []string{"career", "job", "work"},
		urls:     []string{"https://www.corporate.nestle.ca/en/careers"},
	},
	{
		keywords: []string{"christmas", "holiday", "gift"},
		urls: []string{
			"https://www.madewithnestle.ca/world-canada",
			"https://www.nestle.com/brands/chocolate-confectionery",
		},
	},
	{
		keywords: []string{"kitkat", "kit kat"},
		urls: []string{
			"https://www.madewithnestle.ca/brands/kitkat",
			"https://www.nestle.com/brands/chocolate-confectionery/kit-kat",
		},
	},
	{
		keywords: []string{"smarties"},
		urls: []string{
			"https://www.madewithnestle.ca/brands/smarties",
			"https://www.nestle.com/brands/chocolate-confectionery/smarties",
		},
	},
	{
		keywords: []string{"coffee-mate", "coffee mate", "creamer"},
		urls: []string{
			"https://www.madewithnestle.ca/brands/coffee-mate",
			"https://www.nestle.com/brands/coffee/coffee-mate",
		},
	},
}

var fallbackDefaultURLs = []string{
	"https://www.madewithnestle.ca",
	"https://www.nestle.com",
	"https://www.corporate.nestle.ca",
}

const maxFallbackSources = 3

// FallbackSources returns a curated URL list for the query, deduplicated in
// first-seen order and truncated to three entries. Queries matching no rule
// get the fixed top-level brand URLs.
func FallbackSources(query string) []string {
	lower := strings.ToLower(query)

	var urls []string
	for _, rule := range fallbackURLRules {
		if matchesAny(lower, rule.keywords) {
			urls = append(urls, rule.urls...)
		}
	}
	if len(urls) == 0 {
		urls = fallbackDefaultURLs
	}

	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, maxFallbackSources)
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if len(out) == maxFallbackSources {
			break
		}
	}
	return out
}

var fallbackAnswerRules = []keywordRule{
	{
		keywords: []string{"kitkat", "kit kat", "chocolate", "wafer"},
		text: `**KitKat** is one of Nestlé's most beloved chocolate brands!

KitKat features crispy wafer fingers covered in smooth milk chocolate. The iconic slogan "Have a break, have a KitKat" has made it a favorite treat for over 80 years.

**Popular KitKat varieties in Canada:**
- Original 4-finger bars
- KitKat Chunky varieties
- Seasonal flavors and limited editions
- Mini KitKat bars perfect for sharing

Visit **madewithnestle.ca** to explore our full KitKat range and find delicious recipes using KitKat!`,
	},
	{
		keywords: []string{"smarties", "colorful", "candy"},
		text: `**Smarties** are Nestlé's colorful chocolate candies that bring joy to every occasion!

These bite-sized pieces of chocolate covered in a crispy, colorful shell are perfect for sharing, baking, or enjoying as a sweet treat.

**Fun with Smarties:**
- Available in multiple pack sizes
- Perfect for decorating cakes and cookies
- Great for party favors and celebrations
- Made with sustainably sourced cocoa

Visit **madewithnestle.ca** for creative Smarties recipes and baking ideas!`,
	},
	{
		keywords: []string{"coffee", "coffee-mate", "creamer"},
		text: `**Coffee-mate** makes every cup of coffee special with our delicious creamers!

Coffee-mate offers a variety of flavors to enhance your coffee experience, from classic French Vanilla to seasonal favorites like Peppermint Mocha.

**Coffee-mate Products:**
- Liquid creamers in various flavors
- Powdered creamers for convenience
- Seasonal and limited edition flavors
- Sugar-free options available

Transform your daily coffee routine with Coffee-mate! Visit **madewithnestle.ca** for more information.`,
	},
	{
		keywords: []string{"sustainability", "environment", "cocoa"},
		text: `**Nestlé is committed to sustainability** across all our operations and products.

**Our Sustainability Commitments:**
- **Cocoa Plan**: Supporting sustainable cocoa farming and farmer communities
- **Water Stewardship**: Protecting water resources in our operations and communities
- **Carbon Footprint**: Reducing greenhouse gas emissions across our value chain
- **Sustainable Packaging**: Working toward recyclable and reusable packaging

Learn more about our sustainability initiatives at **madewithnestle.ca/sustainability**.`,
	},
}

const fallbackDefaultAnswer = `Hello! I'm your Nestlé Canada assistant. I'm here to help you with information about our delicious products and services.

**Popular Nestlé Canada Brands:**
- **KitKat** - Have a break, have a KitKat
- **Smarties** - Colorful chocolate treats
- **Aero** - Light, bubbly chocolate
- **Coffee-mate** - Coffee creamers and enhancers
- **Quality Street** - Premium assorted chocolates
- **Carnation** - Evaporated milk and hot chocolate

Visit **madewithnestle.ca** to explore our full range of products, recipes, and learn about our commitment to Good Food, Good Life.

How can I help you with Nestlé products today?`

// FallbackAnswer substitutes a deterministic local answer when generation is
// unavailable. First matching rule wins.
func FallbackAnswer(question string) string {
	lower := strings.ToLower(question)
	for _, rule := range fallbackAnswerRules {
		if matchesAny(lower, rule.keywords) {
			return rule.text
		}
	}
	return fallbackDefaultAnswer
}

func matchesAny(lower string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
