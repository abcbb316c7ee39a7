package classify

// College categories in display order. Other is the catch-all.
const (
	CollegeMedicine      = "醫學院"
	CollegeBioAgri       = "生農學院"
	CollegeEngineering   = "工學院"
	CollegeLiberalArts   = "文學院"
	CollegeScience       = "理學院"
	CollegePublicHealth  = "公衛學院"
	CollegeGeneralEd     = "共教學院"
	CollegeSocialScience = "社科學院"
	CollegeEECS          = "電資學院"
	CollegeInnovation    = "創新學院"
	CollegeLifeScience   = "生科學院"
	CollegeLaw           = "法學院"
	CollegeManagement    = "管理學院"
	CollegeInternational = "國際學院"
	CollegeKeyTech       = "重點科技學院"
	CollegeExtension     = "進修推廣學院"
	CollegeOther         = "其他"
)

// CollegeCategories is the fixed category set of the college charts.
var CollegeCategories = []Category{
	CollegeMedicine, CollegeBioAgri, CollegeEngineering, CollegeLiberalArts,
	CollegeScience, CollegePublicHealth, CollegeGeneralEd, CollegeSocialScience,
	CollegeEECS, CollegeInnovation, CollegeLifeScience, CollegeLaw,
	CollegeManagement, CollegeInternational, CollegeKeyTech, CollegeExtension,
	CollegeOther,
}

// collegeRules is evaluated in order. Full names precede their abbreviations
// and narrower keywords precede broader ones ("共同教育" before "共同",
// "進修推廣" before "推廣"); keep that order when adding entries.
var collegeRules = []rule{
	{[]string{"醫學"}, CollegeMedicine},
	{[]string{"生物資源", "農學", "生農"}, CollegeBioAgri},
	{[]string{"工學院"}, CollegeEngineering},
	{[]string{"文學院"}, CollegeLiberalArts},
	{[]string{"理學院"}, CollegeScience},
	{[]string{"公共衛生", "公衛"}, CollegePublicHealth},
	{[]string{"共同教育", "共同"}, CollegeGeneralEd},
	{[]string{"社會科學", "社科"}, CollegeSocialScience},
	{[]string{"電機資訊", "電資"}, CollegeEECS},
	{[]string{"創新設計", "創新"}, CollegeInnovation},
	{[]string{"生命科學", "生科"}, CollegeLifeScience},
	{[]string{"法學院"}, CollegeLaw},
	{[]string{"管理學院"}, CollegeManagement},
	{[]string{"國際學院", "國際"}, CollegeInternational},
	{[]string{"重點科技"}, CollegeKeyTech},
	{[]string{"進修推廣", "推廣"}, CollegeExtension},
}

// College returns the college category of a department or college field.
// Empty or unrecognised input falls back to CollegeOther.
func College(s string) Category {
	if s == "" {
		return CollegeOther
	}
	if c, ok := firstMatch(collegeRules, s); ok {
		return c
	}
	return CollegeOther
}
