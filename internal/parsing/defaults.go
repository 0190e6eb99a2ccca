package parsing

// DefaultStores are the chains most Israeli grocery receipts come from
var DefaultStores = []Store{
	{Name: "Shufersal", Aliases: []string{"שופרסל", "שופר סל", "shufersal", "shufer sal"}},
	{Name: "Rami Levy", Aliases: []string{"רמי לוי", "rami levy", "rami levi"}},
	{Name: "Osher Ad", Aliases: []string{"אושר עד", "osher ad"}},
	{Name: "Yochananof", Aliases: []string{"יוחננוף", "yochananof", "yohananof"}},
	{Name: "Victory", Aliases: []string{"ויקטורי", "victory"}},
	{Name: "Yeinot Bitan", Aliases: []string{"יינות ביתן", "yeinot bitan"}},
	{Name: "Hatzi Hinam", Aliases: []string{"חצי חינם", "hatzi hinam"}},
	{Name: "Tiv Taam", Aliases: []string{"טיב טעם", "tiv taam"}},
	{Name: "Machsanei Hashuk", Aliases: []string{"מחסני השוק", "machsanei hashuk"}},
	{Name: "Super-Pharm", Aliases: []string{"סופר פארם", "סופר-פארם", "super-pharm", "superpharm"}},
	{Name: "Carrefour", Aliases: []string{"קרפור", "carrefour"}},
	{Name: "AM:PM", Aliases: []string{"am:pm", "אם פם"}},
	{Name: "Mega", Aliases: []string{"מגה בעיר", "mega"}},
}

// DefaultCategories are checked in order; within the classifier multi-word
// keywords still take precedence over single words
var DefaultCategories = []Category{
	{Name: "snacks", Keywords: []string{
		"שוקולד חלב", "milk chocolate", "קרמבו", "במבה", "ביסלי", "שוקולד", "עוגיות", "וופל", "חטיף", "צ'יפס", "ממתק",
		"chocolate", "cookies", "chips", "snack", "candy",
	}},
	{Name: "beverages", Keywords: []string{
		"מים מינרלים", "חלב סויה", "חלב שקדים", "soy milk", "almond milk",
		"שקיקי תה", "קולה", "ספרייט", "מיץ", "סודה", "בירה", "יין", "נביעות", "מים", "קפה",
		"cola", "coke", "juice", "soda", "beer", "wine", "water", "coffee",
	}},
	{Name: "dairy", Keywords: []string{
		"גבינה צהובה", "גבינה לבנה", "שמנת מתוקה", "cottage cheese",
		"חלב", "גבינ", "יוגורט", "שמנת", "קוטג", "חמאה", "לבן", "מעדן", "דנונה", "יופלה", "תנובה",
		"milk", "cheese", "yogurt", "butter", "cream",
	}},
	{Name: "bakery", Keywords: []string{
		"לחם", "חלה", "פיתה", "לחמני", "בגט", "מאפה", "עוגה", "קרואסון",
		"bread", "pita", "bagel", "cake", "croissant",
	}},
	{Name: "produce", Keywords: []string{
		"עגבני", "מלפפון", "תפוח", "בננה", "בצל", "גזר", "חסה", "פלפל", "תפוז", "אבוקדו", "לימון", "ירקות", "פירות",
		"tomato", "cucumber", "apple", "banana", "onion", "carrot", "lettuce", "avocado", "lemon",
	}},
	{Name: "meat-fish", Keywords: []string{
		"חזה עוף", "בשר טחון", "chicken breast",
		"עוף", "בשר", "הודו", "שניצל", "נקניק", "סלמון", "טונה", "דג",
		"chicken", "beef", "turkey", "sausage", "salmon", "tuna", "fish",
	}},
	{Name: "frozen", Keywords: []string{
		"קפוא", "גלידה", "פיצה", "בורקס",
		"frozen", "ice cream", "pizza",
	}},
	{Name: "pantry", Keywords: []string{
		"שמן זית", "דגני בוקר", "olive oil",
		"אורז", "פסטה", "קמח", "סוכר", "מלח", "שמן", "קטשופ", "טחינה", "חומוס", "שימורים", "קורנפלקס", "דגני",
		"rice", "pasta", "flour", "sugar", "salt", "oil", "ketchup", "cereal",
	}},
	{Name: "cleaning", Keywords: []string{
		"נייר טואלט", "נוזל כלים", "אבקת כביסה", "toilet paper",
		"אקונומיקה", "סנו", "מגבונים", "מרכך", "ניקוי", "שקיות", "טואלט",
		"detergent", "bleach", "wipes", "cleaner",
	}},
	{Name: "personal-care", Keywords: []string{
		"משחת שיניים", "מברשת שיניים", "toothpaste",
		"שמפו", "סבון", "דאודורנט", "קרם", "תחבושות",
		"shampoo", "soap", "deodorant",
	}},
	{Name: "baby", Keywords: []string{
		"מטרנה", "חיתולים", "האגיס", "פמפרס", "diapers", "pampers", "huggies",
	}},
}
