package classify

// keywordGroups are tested in order against the whole lowercased input by
// substring containment.
var keywordGroups = []struct {
	keywords []string
	label    string
}{
	{[]string{"museum", "musee", "museo"}, "متحف"},
	{[]string{"church", "église", "iglesia", "kirk"}, "كنيسة"},
	{[]string{"mosque", "masjid", "mosquée"}, "مسجد"},
	{[]string{"palace", "palais", "palacio", "palazzo"}, "قصر"},
	{[]string{"castle", "château", "castillo", "castello"}, "قلعة"},
	{[]string{"tower", "tour", "torre", "turm"}, "برج"},
	{[]string{"bridge", "pont", "puente", "ponte"}, "جسر"},
	{[]string{"market", "marché", "mercado", "mercato"}, "سوق"},
	{[]string{"garden", "jardin", "jardín", "giardino"}, "حديقة"},
	{[]string{"park", "parc", "parque", "parco"}, "متنزه"},
	{[]string{"beach", "plage", "playa", "spiaggia"}, "شاطئ"},
	{[]string{"temple", "templo", "tempio"}, "معبد"},
	{[]string{"square", "place", "plaza", "piazza"}, "ميدان"},
	{[]string{"gallery", "galerie", "galería", "galleria"}, "معرض"},
	{[]string{"theater", "theatre", "théâtre", "teatro"}, "مسرح"},
	{[]string{"statue", "estatua", "statua"}, "تمثال"},
	{[]string{"fountain", "fontaine", "fuente", "fontana"}, "نافورة"},
	{[]string{"monument", "monumento"}, "نصب تذكاري"},
}
