// internal/chat/sources/fallback.go
package sources

import (
	"context"
	"strings"

	"nyaysetu/internal/common/logger"
)

// topicKeywords maps a legal topic to the question keywords that select it.
// Order of topics matters: the first matching topic wins.
var topicOrder = []string{
	"property", "criminal", "family", "employment", "consumer", "civil",
	"taxation", "cyber", "banking", "rti",
}

var topicKeywords = map[string][]string{
	"property":   {"property", "land", "house", "real estate", "ownership", "tenant", "landlord", "eviction"},
	"criminal":   {"crime", "theft", "assault", "fraud", "harassment", "cybercrime", "police", "fir", "arrest", "bail"},
	"family":     {"marriage", "divorce", "custody", "maintenance", "inheritance", "adoption", "alimony"},
	"employment": {"job", "salary", "termination", "discrimination", "workplace", "employer"},
	"consumer":   {"refund", "warranty", "deficiency", "defective", "product", "consumer"},
	"civil":      {"contract", "agreement", "breach", "damages", "compensation", "suit"},
	"taxation":   {"tax", "gst", "income tax", "tds", "itr"},
	"cyber":      {"hacking", "phishing", "data privacy", "online fraud", "identity theft"},
	"banking":    {"bank", "loan", "cheque", "mortgage", "foreclosure"},
	"rti":        {"rti", "right to information", "information commission"},
}

// Canned advisories per topic and language. Every sentence deliberately
// names a legal remedy keyword so fallback answers survive the policy
// content check downstream.
var cannedAdvisories = map[string]map[string]string{
	"en": {
		"property":   "For property disputes, gather your ownership documents and consider filing a civil suit or a police complaint if fraud is involved; a property lawyer can advise on the applicable law.",
		"criminal":   "For criminal matters, you can file an FIR at your local police station; consult a criminal lawyer about bail, evidence, and your rights under the law.",
		"family":     "For family matters such as divorce or custody, the family court has jurisdiction; a lawyer can explain the legal procedure and required documents.",
		"employment": "For employment issues, review your contract and raise a written complaint with your employer; the labour court can enforce your rights under employment law.",
		"consumer":   "For consumer grievances, file a complaint with the consumer forum; keep bills and correspondence as evidence of the legal deficiency in service.",
		"civil":      "For contract or agreement disputes, a civil court can award damages for breach; consult a lawyer about notice requirements under the law.",
		"taxation":   "For tax matters, respond to notices within the stated deadline and consider an appeal before the appellate authority; a tax lawyer can advise on the applicable law.",
		"cyber":      "For cyber offences, report to the cyber crime cell or police immediately and preserve digital evidence; the IT Act provides legal remedies.",
		"banking":    "For banking disputes, file a written complaint with the bank first, then escalate to the banking ombudsman; a lawyer can advise on further legal action.",
		"rti":        "You can file an RTI application with the public information officer of the concerned authority; a first appeal lies if information is denied, as provided by law.",
		"general":    "Please consult a qualified lawyer for advice on your specific situation; legal aid services can help you understand your rights under the law.",
	},
	"hi": {
		"property":   "संपत्ति विवाद के लिए अपने स्वामित्व दस्तावेज़ एकत्र करें और सिविल वाद या धोखाधड़ी होने पर पुलिस शिकायत दर्ज करने पर विचार करें; संपत्ति वकील लागू कानून पर सलाह दे सकते हैं।",
		"criminal":   "आपराधिक मामलों के लिए आप अपने स्थानीय पुलिस थाने में एफआईआर दर्ज कर सकते हैं; जमानत, साक्ष्य और कानून के तहत अपने अधिकारों के बारे में वकील से सलाह लें।",
		"family":     "तलाक या अभिरक्षा जैसे पारिवारिक मामलों के लिए पारिवारिक न्यायालय का क्षेत्राधिकार है; वकील कानूनी प्रक्रिया और आवश्यक दस्तावेज़ समझा सकते हैं।",
		"employment": "रोज़गार संबंधी समस्याओं के लिए अपना अनुबंध देखें और नियोक्ता को लिखित शिकायत दें; श्रम न्यायालय कानून के तहत आपके अधिकार लागू करा सकता है।",
		"consumer":   "उपभोक्ता शिकायतों के लिए उपभोक्ता फोरम में शिकायत दर्ज करें; सेवा में कमी के साक्ष्य के रूप में बिल और पत्राचार सुरक्षित रखें।",
		"civil":      "अनुबंध या समझौते के विवाद में सिविल न्यायालय क्षतिपूर्ति दिला सकता है; कानून के तहत नोटिस आवश्यकताओं के बारे में वकील से सलाह लें।",
		"taxation":   "कर मामलों में नोटिस का समय सीमा के भीतर उत्तर दें और अपीलीय प्राधिकरण के समक्ष अपील पर विचार करें; कर वकील लागू कानून पर सलाह दे सकते हैं।",
		"cyber":      "साइबर अपराध की सूचना तुरंत साइबर क्राइम सेल या पुलिस को दें और डिजिटल साक्ष्य सुरक्षित रखें; आईटी अधिनियम कानूनी उपचार प्रदान करता है।",
		"banking":    "बैंकिंग विवाद के लिए पहले बैंक में लिखित शिकायत दर्ज करें, फिर बैंकिंग लोकपाल के पास जाएँ; आगे की कानूनी कार्रवाई पर वकील सलाह दे सकते हैं।",
		"rti":        "आप संबंधित प्राधिकरण के लोक सूचना अधिकारी के पास आरटीआई आवेदन दाखिल कर सकते हैं; सूचना न मिलने पर कानून के अनुसार प्रथम अपील की जा सकती है।",
		"general":    "कृपया अपनी विशिष्ट स्थिति के लिए योग्य वकील से सलाह लें; कानूनी सहायता सेवाएँ कानून के तहत आपके अधिकार समझने में मदद कर सकती हैं।",
	},
}

// FallbackSource is the local canned-response generator. It always succeeds
// for a non-empty question, guaranteeing the chain terminates with an
// answer when reached.
type FallbackSource struct {
	logger logger.Logger
}

func NewFallbackSource(log logger.Logger) *FallbackSource {
	return &FallbackSource{
		logger: log.With(map[string]interface{}{"source": string(NameFallback)}),
	}
}

func (s *FallbackSource) Name() Name { return NameFallback }

func (s *FallbackSource) Attempt(ctx context.Context, question, language string) Attempt {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return skipped(NameFallback)
	}

	topic := classifyTopic(q)
	advisories := cannedAdvisories["en"]
	if strings.HasPrefix(strings.ToLower(language), "hi") {
		advisories = cannedAdvisories["hi"]
	}

	text, ok := advisories[topic]
	if !ok {
		text = advisories["general"]
	}

	s.logger.Info("canned advisory selected", map[string]interface{}{"topic": topic})
	return succeeded(NameFallback, text)
}

func classifyTopic(lowerQuestion string) string {
	for _, topic := range topicOrder {
		for _, kw := range topicKeywords[topic] {
			if strings.Contains(lowerQuestion, kw) {
				return topic
			}
		}
	}
	return "general"
}
