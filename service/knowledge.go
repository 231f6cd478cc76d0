package service

import (
	"regexp"
	"strings"
)

// knowledgeRule maps a question pattern to canned background text used
// when no uploaded documents cover the topic.
type knowledgeRule struct {
	pattern  *regexp.Regexp
	snippets []string
}

// KnowledgeService serves static ONGC background knowledge keyed by
// simple pattern matches on the question. It fills the gap before any
// documents are uploaded and supplements non-strict answers.
type KnowledgeService struct {
	rules []knowledgeRule
}

func NewKnowledgeService() *KnowledgeService {
	return &KnowledgeService{rules: []knowledgeRule{
		{
			pattern: regexp.MustCompile(`(?i)what is ongc|about ongc|ongc company|tell me about`),
			snippets: []string{
				"ONGC (Oil and Natural Gas Corporation Limited) is India's largest oil and gas exploration and production company, founded in 1956. It is a Maharatna Public Sector Undertaking headquartered in Dehradun, with corporate office in New Delhi.",
				"Key Facts: Revenue of ₹4.76 lakh crore (FY 2022-23), over 30,000 employees, contributes ~70% of India's domestic oil production.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)operation|production|drilling|exploration|field`),
			snippets: []string{
				"ONGC Operations: Produces ~21 million metric tonnes of crude oil and ~21 billion cubic meters of natural gas annually.",
				"Major operational areas: Mumbai High (Western Offshore), Krishna-Godavari Basin (Eastern Offshore), Assam, Cambay Basin, Rajasthan.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)mumbai high|bombay high`),
			snippets: []string{
				"Mumbai High is India's largest offshore oil field, located 160 km west of Mumbai in the Arabian Sea. Discovered in 1974, it is a major contributor to India's oil production.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)subsidiar|ovl|videsh|mrpl|opal`),
			snippets: []string{
				"ONGC Subsidiaries: ONGC Videsh Limited (OVL) - overseas E&P operations in 20+ countries; MRPL - Mangalore Refinery (15 MMTPA capacity); OPaL - Petrochemical complex in Dahej, Gujarat.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)technology|digital|\bai\b|\bml\b|innovation|iot`),
			snippets: []string{
				"ONGC Technology Initiatives: AI/ML for reservoir management, IoT-enabled smart wells, digital twin technology, drone-based inspections, blockchain for supply chain.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)renewable|solar|wind|hydrogen|carbon`),
			snippets: []string{
				"ONGC Renewable Energy: Solar and wind power projects, geothermal energy exploration, hydrogen fuel initiatives, carbon capture and storage. Target: Net zero carbon emissions by 2038.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)safety|hse|health|environment|iso`),
			snippets: []string{
				"ONGC Safety Standards: ISO 9001, ISO 14001, ISO 45001, ISO 50001 certified. Programs include Process Safety Management (PSM), Behavior Based Safety (BBS), Emergency Response systems.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)csr|social|community|responsibility`),
			snippets: []string{
				"ONGC CSR Focus Areas: Education and skill development, healthcare, rural development, water conservation, sports promotion, art and culture preservation.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)training|institute|education|learning|ihrdc`),
			snippets: []string{
				"ONGC Training: ONGC Energy Centre in Dehradun is the premier training institute. IHRDC has centers in Dehradun, Goa, Ahmedabad, and Kakinada.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)achievement|award|milestone|maharatna|fortune`),
			snippets: []string{
				"ONGC Achievements: Maharatna status (2010), Forbes Global 2000 company, Fortune 500 company. Milestones include first offshore oil discovery (1974), 1 billion tonnes cumulative oil production.",
			},
		},
		{
			pattern: regexp.MustCompile(`(?i)location|office|headquarter|where`),
			snippets: []string{
				"ONGC Headquarters: Dehradun, Uttarakhand. Corporate Office: ONGC Bhawan, Vasant Kunj, New Delhi. Website: www.ongcindia.com",
			},
		},
	}}
}

// Lookup returns background text matching the question, or an empty
// string when no rule matches.
func (s *KnowledgeService) Lookup(question string) string {
	var matched []string
	for _, rule := range s.rules {
		if rule.pattern.MatchString(question) {
			matched = append(matched, rule.snippets...)
		}
	}
	if len(matched) == 0 {
		return ""
	}
	return "\n\nONGC Background Knowledge:\n" + strings.Join(matched, "\n\n") + "\n"
}

// FullBackground returns the company overview substituted for document
// context when nothing has been uploaded.
func (s *KnowledgeService) FullBackground() string {
	return `
ONGC (Oil and Natural Gas Corporation Limited) - Company Overview:
- India's largest oil and gas E&P company, founded in 1956
- Maharatna PSU with headquarters in Dehradun
- Revenue: ₹4.76 lakh crore (FY 2022-23)
- Produces ~21 MMT crude oil and ~21 BCM natural gas annually
- Contributes ~70% of India's domestic oil production
- Major assets: Mumbai High, Bassein Field, KG Basin
- Subsidiaries: ONGC Videsh (OVL), MRPL, OPaL
- Focus on digitalization, renewable energy, and sustainability
- Target: Net zero carbon emissions by 2038
`
}
