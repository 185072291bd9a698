package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/amzcrawl"
)

// Field names a logical piece of information located by the catalog.
type Field string

// Search result page fields.
const (
	FieldResult        Field = "result"
	FieldTitle         Field = "title"
	FieldTitleLink     Field = "title_link"
	FieldImage         Field = "image"
	FieldPriceCurrent  Field = "price_current"
	FieldPriceOriginal Field = "price_original"
	FieldPriceRange    Field = "price_range"
	FieldPriceHidden   Field = "price_hidden"
	FieldRatingStars   Field = "rating_stars"
	FieldReviewCount   Field = "review_count"
	FieldPrime         Field = "prime"
	FieldSponsored     Field = "sponsored"
	FieldAmazonChoice  Field = "amazon_choice"
	FieldBrand         Field = "brand"
	FieldTotalResults  Field = "total_results"
	FieldNextPage      Field = "next_page"
	FieldNoResults     Field = "no_results"
)

// Product detail page fields.
const (
	FieldProductTitle         Field = "product_title"
	FieldProductPrice         Field = "product_price"
	FieldProductPriceOriginal Field = "product_price_original"
	FieldProductImage         Field = "product_image"
	FieldProductRating        Field = "product_rating"
	FieldProductReviewCount   Field = "product_review_count"
	FieldProductBrand         Field = "product_brand"
	FieldProductAvailability  Field = "product_availability"
	FieldProductPrime         Field = "product_prime"
	FieldProductAmazonChoice  Field = "product_amazon_choice"
	FieldProductASIN          Field = "product_asin"
	FieldProductFeatures      Field = "product_features"
	FieldProductDescription   Field = "product_description"
)

// Block page markers.
const (
	FieldCaptcha     Field = "captcha"
	FieldServicePage Field = "service_page"
)

// ASINAttr is the card root attribute carrying the listing identifier.
const ASINAttr = "data-asin"

// Rule is one compiled alternative for locating a field.
type Rule struct {
	Source  string
	matcher cascadia.Selector
}

// NewRule compiles a CSS selector into a Rule.
// Substring text matching is available through :contains("text"),
// which compares case-insensitively.
func NewRule(source string) (Rule, error) {
	m, err := cascadia.Compile(source)
	if err != nil {
		return Rule{}, amzcrawl.Errorf(amzcrawl.EINVALID, "invalid selector %q: %v", source, err)
	}
	return Rule{Source: source, matcher: m}, nil
}

// MustRule is like NewRule but panics on an invalid selector.
func MustRule(source string) Rule {
	r, err := NewRule(source)
	if err != nil {
		panic(err)
	}
	return r
}

// Catalog holds an ordered list of rules for each field. For every lookup
// the rules are tried in order and the first one matching at least one
// element wins; later rules are not consulted.
//
// A Catalog is never modified after construction and is safe for
// concurrent use.
type Catalog struct {
	rules map[Field][]Rule
}

// NewCatalog returns the catalog for the marketplace's current markup.
// Within each field structural and attribute rules come before class-name
// rules.
func NewCatalog() *Catalog {
	c := &Catalog{rules: make(map[Field][]Rule)}
	for field, sources := range defaultRules {
		rules := make([]Rule, len(sources))
		for i, src := range sources {
			rules[i] = MustRule(src)
		}
		c.rules[field] = rules
	}
	return c
}

// With returns a copy of the catalog where field uses rules instead of its
// current list. The receiver is left untouched.
func (c *Catalog) With(field Field, rules ...Rule) *Catalog {
	out := &Catalog{rules: make(map[Field][]Rule, len(c.rules)+1)}
	for f, r := range c.rules {
		out.rules[f] = r
	}
	out.rules[field] = append([]Rule(nil), rules...)
	return out
}

// Rules returns a copy of the rules for field in priority order.
func (c *Catalog) Rules(field Field) []Rule {
	return append([]Rule(nil), c.rules[field]...)
}

// Find returns the elements matched by the first rule for field that
// matches anything inside scope.
func (c *Catalog) Find(scope *goquery.Selection, field Field) (*goquery.Selection, bool) {
	for _, r := range c.rules[field] {
		if sel := scope.FindMatcher(r.matcher); sel.Length() > 0 {
			return sel, true
		}
	}
	return nil, false
}

// Has reports whether any rule for field matches inside scope.
func (c *Catalog) Has(scope *goquery.Selection, field Field) bool {
	_, ok := c.Find(scope, field)
	return ok
}

// Text returns the trimmed text of the first element found for field.
// Blank text counts as absent.
func (c *Catalog) Text(scope *goquery.Selection, field Field) (string, bool) {
	sel, ok := c.Find(scope, field)
	if !ok {
		return "", false
	}
	text := strings.TrimSpace(sel.First().Text())
	return text, text != ""
}

// Attr returns the first non-empty value of attr among the attribute
// names given, read from the first element found for field.
func (c *Catalog) Attr(scope *goquery.Selection, field Field, attrs ...string) (string, bool) {
	sel, ok := c.Find(scope, field)
	if !ok {
		return "", false
	}
	first := sel.First()
	for _, a := range attrs {
		if v, ok := first.Attr(a); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

var defaultRules = map[Field][]string{
	FieldResult: {
		"[data-component-type='s-search-result']",
	},
	FieldTitle: {
		"h2 a span",
		"h2 span.a-text-normal",
		".a-size-medium.a-text-normal",
		".a-size-base-plus.a-text-normal",
	},
	FieldTitleLink: {
		"h2 a.a-link-normal",
		"h2 a.s-link-style",
		".a-link-normal.s-underline-text",
	},
	FieldImage: {
		"img.s-image",
		".s-product-image-container img",
	},
	FieldPriceCurrent: {
		".a-price:not([data-a-strike]) .a-offscreen",
		".a-price .a-offscreen",
	},
	FieldPriceOriginal: {
		".a-price[data-a-strike] .a-offscreen",
		".a-text-price .a-offscreen",
		"span[data-a-strike='true'] .a-offscreen",
	},
	FieldPriceRange: {
		".a-price-range",
		".a-price + .a-price",
	},
	FieldPriceHidden: {
		".a-color-base:contains('See price in cart')",
		".a-color-base:contains('See price')",
		".a-button-text:contains('See price')",
	},
	FieldRatingStars: {
		"i.a-icon-star-small span.a-icon-alt",
		"i.a-icon-star span.a-icon-alt",
		"span.a-icon-alt",
	},
	FieldReviewCount: {
		"a[href*='customerReviews'] span",
		"span.a-size-base.s-underline-text",
		".a-size-base.puis-light-weight-text",
	},
	FieldPrime: {
		"[data-component-type='s-prime-badge']",
		"i.a-icon-prime",
		".a-icon-prime",
	},
	FieldSponsored: {
		".puis-label-popover-default",
		".s-label-popover-default",
		"span:contains('Sponsored')",
		".a-color-secondary:contains('Sponsored')",
	},
	FieldAmazonChoice: {
		"[data-component-type='s-merchandised-badge']",
		".a-badge-text:contains('Choice')",
	},
	FieldBrand: {
		"h5.s-line-clamp-1 span",
		".a-row.a-size-base.a-color-secondary span",
		".a-size-base-plus.a-color-base:not(.a-text-normal)",
	},
	FieldTotalResults: {
		"[data-component-type='s-result-info-bar'] h1 span",
		".a-section.a-spacing-small span:first-child",
		".sg-col-inner .a-section span",
	},
	FieldNextPage: {
		"a.s-pagination-next",
		".s-pagination-item.s-pagination-next:not(.s-pagination-disabled)",
	},
	FieldNoResults: {
		".a-section.a-text-center.s-no-search-results",
		"span:contains('No results for')",
	},

	FieldProductTitle: {
		"#productTitle",
		"#title span",
		".product-title-word-break",
	},
	FieldProductPrice: {
		"#corePrice_feature_div .a-price .a-offscreen",
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		".a-price .a-offscreen",
	},
	FieldProductPriceOriginal: {
		"#corePrice_feature_div .a-text-price .a-offscreen",
		"#priceblock_saleprice",
		".a-text-price .a-offscreen",
	},
	FieldProductImage: {
		"#landingImage",
		"#imgTagWrapperId img",
		"#main-image",
	},
	FieldProductRating: {
		"#acrPopover span.a-icon-alt",
		".a-icon-star span.a-icon-alt",
	},
	FieldProductReviewCount: {
		"#acrCustomerReviewText",
		"#acrCustomerReviewLink span",
	},
	FieldProductBrand: {
		"#bylineInfo",
		".po-brand .po-break-word",
		"a#bylineInfo",
	},
	FieldProductAvailability: {
		"#availability span",
		"#outOfStock span",
		".a-color-success",
	},
	FieldProductPrime: {
		"#prime-badge",
		"i.a-icon-prime",
		".a-icon-prime",
	},
	FieldProductAmazonChoice: {
		"#acBadge_feature_div .a-badge-text",
		".ac-badge-wrapper",
	},
	FieldProductASIN: {
		"input[name='ASIN']",
		"th:contains('ASIN') + td",
	},
	FieldProductFeatures: {
		"#feature-bullets ul li span.a-list-item",
		"#feature-bullets li",
	},
	FieldProductDescription: {
		"#productDescription",
		"#bookDescription_feature_div .a-expander-content",
	},

	// Markers only appear on the challenge and error pages themselves;
	// product copy and imagery must never trip them.
	FieldCaptcha: {
		"form[action*='validateCaptcha']",
		"img[src*='images-amazon.com/captcha/']",
		".a-box-inner h4:contains('Type the characters you see')",
	},
	FieldServicePage: {
		".a-box-inner a[href='/ref=cs_503_link']",
		"a[href*='cs_503_link']",
		"img[alt*='Dogs of Amazon' i]",
		"a[href*='/dogsofamazon'] img[src*='/error/']",
	},
}
