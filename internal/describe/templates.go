package describe

// templates are keyed by English attraction type, in lookup order.
var templates = []template{
	{
		key:   "Museum",
		label: "متحف",
		body:  " هو متحف رائع يضم مجموعة مميزة من المعروضات والقطع الأثرية التي تحكي تاريخ وثقافة المنطقة. يوفر المتحف تجربة تعليمية وثقافية ممتعة للزوار من جميع الأعمار.",
	},
	{
		key:   "Cathedral",
		label: "كاتدرائية",
		body:  " هي كاتدرائية مذهلة تتميز بهندستها المعمارية الرائعة وتاريخها العريق. تعتبر من أهم المعالم الدينية والثقافية في المدينة وتجذب الزوار من جميع أنحاء العالم.",
	},
	{
		key:   "Church",
		label: "كنيسة",
		body:  " هي كنيسة تاريخية جميلة تمثل رمزاً دينياً وثقافياً مهماً في المنطقة. تتميز بتصميمها المعماري الفريد وأهميتها الروحية للمجتمع المحلي.",
	},
	{
		key:   "Mosque",
		label: "مسجد",
		body:  " هو مسجد عريق يتميز بتصميمه الإسلامي الأصيل وقيمته الروحية العظيمة. يعتبر مركزاً دينياً مهماً ومعلماً معمارياً يجذب المؤمنين والزوار على حد سواء.",
	},
	{
		key:   "Palace",
		label: "قصر",
		body:  " هو قصر ملكي فخم يعكس عظمة التاريخ وجمال العمارة التقليدية. يضم القصر قاعات رائعة وحدائق خلابة، ويحكي قصص الحكام والنبلاء عبر التاريخ.",
	},
	{
		key:   "Tower",
		label: "برج",
		body:  " هو برج شاهق مميز يوفر إطلالات بانورامية رائعة على المدينة والمناطق المحيطة. يعتبر رمزاً معمارياً مهماً ونقطة جذب سياحية شهيرة.",
	},
	{
		key:   "Bridge",
		label: "جسر",
		body:  " هو جسر معماري رائع يربط بين ضفتي النهر ويعتبر رمزاً مميزاً للمدينة. يتميز بتصميمه الهندسي الفريد ويوفر مناظر خلابة للمياه والمناطق المحيطة.",
	},
	{
		key:   "Market",
		label: "سوق",
		body:  " هو سوق تقليدي نابض بالحياة يقدم تجربة تسوق أصيلة وفريدة. يضم السوق متاجر متنوعة تبيع المنتجات المحلية والحرف التقليدية والتذكارات.",
	},
	{
		key:   "Garden",
		label: "حديقة",
		body:  " هي حديقة خضراء جميلة مليئة بالنباتات المتنوعة والأزهار الملونة. توفر الحديقة مساحة هادئة للاستجمام والاستمتاع بالطبيعة في قلب المدينة.",
	},
	{
		key:   "Park",
		label: "متنزه",
		body:  " هو متنزه واسع يوفر مساحات خضراء للاستجمام والأنشطة الترفيهية. يعتبر مكاناً مثالياً للعائلات والأطفال للاستمتاع بالهواء الطلق والطبيعة.",
	},
	{
		key:   "Beach",
		label: "شاطئ",
		body:  " هو شاطئ رملي جميل بمياه صافية يقدم تجربة استجمام مثالية. يوفر الشاطئ أنشطة مائية متنوعة ومناظر طبيعية خلابة للزوار.",
	},
	{
		key:   "Castle",
		label: "قلعة",
		body:  " هي قلعة تاريخية محصنة تحكي قصص الماضي العريق والمعارك التاريخية. تتميز بهندستها الدفاعية القوية وتوفر إطلالات رائعة على المناطق المحيطة.",
	},
	{
		key:   "Temple",
		label: "معبد",
		body:  " هو معبد قديم يحمل قيمة روحية وتاريخية عظيمة. يتميز بتصميمه المعماري الفريد ويعتبر مكاناً مقدساً ومركزاً للعبادة والتأمل.",
	},
	{
		key:   "Monument",
		label: "نصب تذكاري",
		body:  " هو نصب تذكاري مهم يخلد ذكرى أحداث تاريخية مهمة أو شخصيات عظيمة. يعتبر رمزاً للذاكرة الجماعية ونقطة جذب ثقافية.",
	},
	{
		key:   "Plaza",
		label: "ساحة",
		body:  " هي ساحة مركزية حيوية تجمع الزوار والسكان المحليين في أجواء اجتماعية نابضة بالحياة. تحيط بها المقاهي والمحلات وتقام فيها الفعاليات الثقافية.",
	},
	{
		key:   "Gallery",
		label: "معرض",
		body:  " هو معرض فني راقي يعرض أعمالاً فنية متنوعة ومعاصرة. يوفر المعرض منصة للفنانين لعرض إبداعاتهم ويقدم تجربة ثقافية غنية للزوار.",
	},
	{
		key:   "Theater",
		label: "مسرح",
		body:  " هو مسرح عريق يستضيف العروض المسرحية والثقافية المتنوعة. يعتبر مركزاً مهماً للفنون الأدائية ويساهم في إثراء الحياة الثقافية للمدينة.",
	},
	{
		key:   "Stadium",
		label: "استاد",
		body:  " هو استاد رياضي حديث يستضيف المباريات والأحداث الرياضية الكبرى. يوفر تجربة مثيرة لمحبي الرياضة ويعتبر رمزاً للتميز الرياضي.",
	},
	{
		key:   "Library",
		label: "مكتبة",
		body:  " هي مكتبة عامة مهمة تضم مجموعة واسعة من الكتب والمراجع. تعتبر مركزاً للتعلم والمعرفة وتوفر بيئة هادئة للقراءة والدراسة.",
	},
	{
		key:   "Aquarium",
		label: "أكواريوم",
		body:  " هو أكواريوم رائع يضم مجموعة متنوعة من الكائنات البحرية والأسماك الملونة. يوفر تجربة تعليمية ممتعة للأطفال والعائلات.",
	},
	{
		key:   "Zoo",
		label: "حديقة حيوان",
		body:  " هي حديقة حيوان واسعة تضم مجموعة متنوعة من الحيوانات من جميع أنحاء العالم. توفر تجربة تعليمية وترفيهية رائعة للزوار من جميع الأعمار.",
	},
}
