package classify

// typeTable maps known English attraction types to their Arabic labels.
// Order matters: the case-insensitive, singular and token layers scan it
// top to bottom and the first hit wins.
var typeTable = []entry{
	{"Museum", "متحف"},
	{"Cathedral", "كاتدرائية"},
	{"Church", "كنيسة"},
	{"Mosque", "مسجد"},
	{"Palace", "قصر"},
	{"Tower", "برج"},
	{"Bridge", "جسر"},
	{"Market", "سوق"},
	{"Garden", "حديقة"},
	{"Park", "متنزه"},
	{"Beach", "شاطئ"},
	{"Castle", "قلعة"},
	{"Temple", "معبد"},
	{"Monument", "نصب تذكاري"},
	{"Plaza", "ساحة"},
	{"Square", "ميدان"},
	{"Gallery", "معرض"},
	{"Theater", "مسرح"},
	{"Theatre", "مسرح"},
	{"Opera House", "دار الأوبرا"},
	{"Basilica", "بازيليكا"},
	{"Sanctuary", "ملاذ"},
	{"Shrine", "ضريح"},
	{"Fortress", "حصن"},
	{"Archaeological Site", "موقع أثري"},
	{"Stadium", "استاد - ملعب"},
	{"Library", "مكتبة"},
	{"University", "جامعة"},
	{"Observatory", "مرصد"},
	{"Aquarium", "أكواريوم"},
	{"Zoo", "حديقة حيوان"},
	{"Shopping Center", "مركز تسوق"},
	{"Street", "شارع"},
	{"Avenue", "جادة"},
	{"Boulevard", "شارع كبير"},
	{"Promenade", "كورنيش"},
	{"Waterfront", "واجهة بحرية"},
	{"Harbor", "ميناء"},
	{"Port", "مرفأ"},
	{"Lighthouse", "منارة"},
	{"Island", "جزيرة"},
	{"Lake", "بحيرة"},
	{"River", "نهر"},
	{"Valley", "وادي"},
	{"Mountain", "جبل"},
	{"Hill", "تل"},
	{"Cliff", "جرف"},
	{"Viewpoint", "نقطة مشاهدة"},
	{"Lookout", "مطل"},
	{"Building", "مبنى"},
	{"Architecture", "عمارة"},
	{"Historic Site", "موقع تاريخي"},
	{"Religious Site", "موقع ديني"},
	{"Natural Site", "موقع طبيعي"},
	{"Cultural Site", "موقع ثقافي"},
	{"Entertainment", "ترفيه"},
	{"Recreation", "استجمام"},
	{"Sports", "رياضة"},
	{"Education", "تعليم"},
	{"Transportation", "نقل"},
	{"Commercial", "تجاري"},
	{"Residential", "سكني"},
	{"Government", "حكومي"},
	{"Military", "عسكري"},
	{"Industrial", "صناعي"},
	{"Art", "فن"},
	{"Science", "علوم"},
	{"Nature", "طبيعة"},
	{"Water", "مياه"},
	{"Food", "طعام"},
	{"Shopping", "تسوق"},
	{"Hotel", "فندق"},
	{"Restaurant", "مطعم"},
	{"Cafe", "مقهى"},
	{"Bar", "بار"},
	{"Club", "نادي"},
	{"Store", "متجر"},
	{"Shop", "محل"},
	{"Mall", "مول"},
	{"Cinema", "سينما"},
	{"Concert Hall", "قاعة حفلات"},
	{"Convention Center", "مركز مؤتمرات"},
	{"Exhibition", "معرض"},
	{"Fair", "معرض"},
	{"Festival", "مهرجان"},
	{"Event", "حدث"},
	{"Statue", "تمثال"},
	{"Sculpture", "منحوتة"},
	{"Fountain", "نافورة"},
	{"Memorial", "معلم"},
	{"Cemetery", "مقبرة"},
	{"Synagogue", "كنيس"},
	{"Convent", "دير"},
	{"Monastery", "دير"},
	{"Abbey", "دير"},
	{"Chapel", "كنيسة صغيرة"},
	{"Forum", "منتدى"},
	{"Amphitheater", "مدرج"},
	{"Colosseum", "كولوسيوم"},
	{"Arena", "ساحة"},
	{"Ruins", "أطلال"},
	{"Wall", "جدار"},
	{"Gate", "بوابة"},
	{"Arch", "قوس"},
	{"Dome", "قبة"},
	{"Spire", "برج"},
	{"Minaret", "مئذنة"},
	{"Obelisk", "مسلة"},
	{"Column", "عمود"},
	{"Pillar", "عمود"},
	{"activity", "أنشطة"},
	{"Activity", "أنشطة"},
	{"Attraction", "أنشطة"},
	{"historical", "موقع تاريخي"},
	{"Historical Area", "موقع تاريخي"},
	{"historical landmark", "معلم تاريخي"},
	{"Historical Landmark", "معلم تاريخي"},
	{"Historical Place", "موقع تاريخي"},
	{"historical sites", "موقع تاريخي"},
	{"Landmark", "معلم"},
	{"marina", "بحري"},
	{"Marina", "بحري"},
	{"Modern Area", "منطقة حديثة"},
	{"Modern Landmark", "معلم حديث"},
	{"Scenic Area", "منظر خلاب"},
	{"Scenic Landmark", "معلم خلاب"},
	{"Scenic Place", "منظر خلاب"},
	{"Scenic Site", "منظر خلاب"},
	{"Scenic Viewpoint", "نقطة مشاهدة خلابة"},
	{"Scenic Lookout", "مطل خلاب"},
	{"Scenic Building", "منظر خلاب"},
	{"Scenic", "منظر خلاب"},
	{"Scenic View", "منظر خلاب"},
	{"Scenic Look", "منظر خلاب"},
	{"Educational", "تعليمي"},
	{"Educational Institution", "منشأة تعليمية"},
	{"sport", "رياضي"},
	{"Sport", "رياضي"},
	{"Waterway", "طريق مائي"},
}
