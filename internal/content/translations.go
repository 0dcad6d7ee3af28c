package content

// messages is the static fallback catalog for content that has no bilingual
// pair on the record itself. Keys are stable lookup identifiers used by the
// frontend.
var messages = map[string]map[Lang]string{
	"nav.home":            {Arabic: "الرئيسية", English: "Home"},
	"nav.cart":            {Arabic: "سلة التسوق", English: "Cart"},
	"nav.favorites":       {Arabic: "المفضلة", English: "Favorites"},
	"nav.occasions":       {Arabic: "المناسبات", English: "Occasions"},
	"nav.categories":      {Arabic: "التصنيفات", English: "Categories"},
	"auth.loginRequired":  {Arabic: "يرجى تسجيل الدخول أولاً", English: "Please log in first"},
	"auth.verifySent":     {Arabic: "تم إرسال رمز التحقق", English: "Verification code sent"},
	"cart.added":          {Arabic: "تمت الإضافة إلى السلة", English: "Added to cart"},
	"cart.addFailed":      {Arabic: "تعذرت إضافة المنتج إلى السلة", English: "Could not add the product to your cart"},
	"favorites.added":     {Arabic: "تمت الإضافة إلى المفضلة", English: "Added to favorites"},
	"error.network":       {Arabic: "تعذر الاتصال بالمتجر، حاول مرة أخرى", English: "Could not reach the store, please try again"},
	"error.generic":       {Arabic: "حدث خطأ ما", English: "Something went wrong"},
	"hero.shopNow":        {Arabic: "تسوق الآن", English: "Shop now"},
	"product.bestSeller":  {Arabic: "الأكثر مبيعاً", English: "Best seller"},
	"product.specialGift": {Arabic: "هدية مميزة", English: "Special gift"},
}

// T resolves a static message by key. Unknown keys return the key itself so
// a missing translation is visible instead of blank.
func T(key string, lang Lang) string {
	entry, ok := messages[key]
	if !ok {
		return key
	}
	if msg, ok := entry[lang]; ok && msg != "" {
		return msg
	}
	return entry[Arabic]
}
