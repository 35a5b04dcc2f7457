package screening

// Baseline references are cited on every analysis, whatever the findings.
var baselineReferenceIDs = []string{"ML57-01", "ML24-01"}

var defaultReferences = []Reference{
	{ID: "ML56-01", Title: "의료법 제56조", Clause: "1) 평가를 받지 않은 신의료기술 광고", Excerpt: "평가를 받지 않은 신의료기술 광고는 금지됩니다. (요약)"},
	{ID: "ML56-02", Title: "의료법 제56조", Clause: "2) 치료경험담 등 치료효과 오인/현혹 우려", Excerpt: "치료경험담 등으로 치료효과를 오인·현혹할 우려가 있는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-03", Title: "의료법 제56조", Clause: "3) 거짓 내용 표시", Excerpt: "거짓된 내용을 표시하는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-04", Title: "의료법 제56조", Clause: "4) 비교 광고", Excerpt: "다른 의료인등의 기능·진료방법과 비교하는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-05", Title: "의료법 제56조", Clause: "5) 비방 광고", Excerpt: "다른 의료인등을 비방하는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-06", Title: "의료법 제56조", Clause: "6) 직접 시술행위 노출", Excerpt: "수술 장면 등 직접 시술행위를 노출하는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-07", Title: "의료법 제56조", Clause: "7) 중요정보 누락", Excerpt: "심각한 부작용 등 중요한 정보를 누락한 광고는 금지됩니다. (요약)"},
	{ID: "ML56-08", Title: "의료법 제56조", Clause: "8) 객관적 사실의 과장", Excerpt: "객관적 사실을 과장하는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-09", Title: "의료법 제56조", Clause: "9) 법적 근거 없는 자격/명칭 표방", Excerpt: "법적 근거 없는 자격·명칭을 표방하는 광고는 금지됩니다. (요약)"},
	{ID: "ML56-10", Title: "의료법 제56조", Clause: "10) 기사 또는 전문가 의견 형태로 포장된 광고", Excerpt: "기사·전문가 의견 형태로 포장된 광고는 금지됩니다. (요약)"},
	{ID: "ML56-11", Title: "의료법 제56조", Clause: "11) 사전심의 미이행 또는 심의 내용과 다른 광고", Excerpt: "사전심의를 받지 않거나 심의 내용과 다른 광고는 금지됩니다. (요약)"},
	{ID: "ML56-12", Title: "의료법 제56조", Clause: "12) 외국인환자 유치를 위한 국내 광고", Excerpt: "외국인환자 유치를 위한 국내 광고는 제한됩니다. (요약)"},
	{ID: "ML56-13", Title: "의료법 제56조", Clause: "13) 비급여 진료비용 할인/면제 광고", Excerpt: "소비자를 속이거나 오인시키는 비급여 진료비용 할인·면제 광고는 금지됩니다. (요약)"},
	{ID: "ML56-14", Title: "의료법 제56조", Clause: "14) 상장·감사장 또는 인증·보증·추천 표현", Excerpt: "상장·감사장 또는 인증·보증·추천 표현을 이용한 광고는 금지됩니다. (요약)"},
	{ID: "ML56-15", Title: "의료법 제56조", Clause: "15) 보건·건전한 의료경쟁 질서 저해 우려 광고", Excerpt: "보건·건전한 의료경쟁 질서 저해 또는 소비자 피해 우려 광고는 제한됩니다. (요약)"},
	{ID: "ML57-01", Title: "의료법 제57조", Clause: "사전심의 대상 매체", Excerpt: "신문·인터넷신문·정기간행물, 전광판, 대통령령 정한 인터넷매체 등은 사전심의 대상입니다. (요약)"},
	{ID: "ML57-02", Title: "의료법 제57조", Clause: "심의 수행 기관 요건", Excerpt: "의사회·치과의사회·한의사회 및 요건을 갖춘 소비자단체가 심의업무를 수행할 수 있습니다. (요약)"},
	{ID: "ML57-03", Title: "의료법 제57조", Clause: "심의 예외(기본정보 광고)", Excerpt: "명칭·소재지·연락처·진료과목 등 기본정보 광고는 심의 없이 가능할 수 있습니다. (요약)"},
	{ID: "ML57-2-01", Title: "의료법 제57조의2", Clause: "심의위원회 설치·운영", Excerpt: "자율심의기구는 심의위원회를 설치·운영해야 합니다. (요약)"},
	{ID: "ML24-01", Title: "의료법 시행령 제24조", Clause: "인터넷 매체/광고매체 정의", Excerpt: "인터넷뉴스서비스, 방송사업자 홈페이지, 일평균 이용자 10만 이상 SNS 등(앱 포함)이 포함됩니다. (요약)"},
}

var defaultRules = []Rule{
	{Phrase: "100% 보장", RiskLevel: RiskHigh, ViolationType: "치료효과 오인/현혹 우려", ReferenceID: "ML56-02"},
	{Phrase: "완치", RiskLevel: RiskHigh, ViolationType: "치료효과 오인/현혹 우려", ReferenceID: "ML56-02"},
	{Phrase: "치료효과 보장", RiskLevel: RiskHigh, ViolationType: "치료효과 오인/현혹 우려", ReferenceID: "ML56-02"},
	{Phrase: "전후", RiskLevel: RiskMedium, ViolationType: "치료경험담 등 치료효과 오인/현혹 우려", ReferenceID: "ML56-02"},
	{Phrase: "후기", RiskLevel: RiskMedium, ViolationType: "치료경험담 등 치료효과 오인/현혹 우려", ReferenceID: "ML56-02"},
	{Phrase: "세계 최고", RiskLevel: RiskMedium, ViolationType: "객관적 사실의 과장", ReferenceID: "ML56-08"},
	{Phrase: "국내 최고", RiskLevel: RiskMedium, ViolationType: "객관적 사실의 과장", ReferenceID: "ML56-08"},
	{Phrase: "즉각적인 효과", RiskLevel: RiskMedium, ViolationType: "객관적 사실의 과장", ReferenceID: "ML56-08"},
	{Phrase: "부작용 없음", RiskLevel: RiskHigh, ViolationType: "객관적 사실의 과장", ReferenceID: "ML56-08"},
	{Phrase: "1위", RiskLevel: RiskMedium, ViolationType: "비교 광고", ReferenceID: "ML56-04"},
	{Phrase: "No.1", RiskLevel: RiskMedium, ViolationType: "비교 광고", ReferenceID: "ML56-04"},
	{Phrase: "타 병원보다", RiskLevel: RiskMedium, ViolationType: "비교 광고", ReferenceID: "ML56-04"},
	{Phrase: "전문의", RiskLevel: RiskLow, ViolationType: "자격/명칭 표방", ReferenceID: "ML56-09"},
	{Phrase: "인증", RiskLevel: RiskMedium, ViolationType: "인증·보증·추천 표현", ReferenceID: "ML56-14"},
	{Phrase: "보증", RiskLevel: RiskMedium, ViolationType: "인증·보증·추천 표현", ReferenceID: "ML56-14"},
	{Phrase: "추천", RiskLevel: RiskMedium, ViolationType: "인증·보증·추천 표현", ReferenceID: "ML56-14"},
	{Phrase: "상장", RiskLevel: RiskMedium, ViolationType: "상장·감사장·인증·보증·추천 표현", ReferenceID: "ML56-14"},
	{Phrase: "감사장", RiskLevel: RiskMedium, ViolationType: "상장·감사장·인증·보증·추천 표현", ReferenceID: "ML56-14"},
	{Phrase: "수상", RiskLevel: RiskMedium, ViolationType: "상장·감사장·인증·보증·추천 표현", ReferenceID: "ML56-14"},
	{Phrase: "기사", RiskLevel: RiskLow, ViolationType: "기사 또는 전문가 의견 형태 광고", ReferenceID: "ML56-10"},
	{Phrase: "보도", RiskLevel: RiskLow, ViolationType: "기사 또는 전문가 의견 형태 광고", ReferenceID: "ML56-10"},
	{Phrase: "전문가 의견", RiskLevel: RiskLow, ViolationType: "기사 또는 전문가 의견 형태 광고", ReferenceID: "ML56-10"},
	{Phrase: "할인", RiskLevel: RiskMedium, ViolationType: "비급여 진료비용 할인/면제 광고", ReferenceID: "ML56-13"},
	{Phrase: "무료", RiskLevel: RiskMedium, ViolationType: "비급여 진료비용 할인/면제 광고", ReferenceID: "ML56-13"},
	{Phrase: "면제", RiskLevel: RiskMedium, ViolationType: "비급여 진료비용 할인/면제 광고", ReferenceID: "ML56-13"},
	{Phrase: "이벤트", RiskLevel: RiskLow, ViolationType: "비급여 진료비용 할인/면제 광고", ReferenceID: "ML56-13"},
	{Phrase: "쿠폰", RiskLevel: RiskLow, ViolationType: "비급여 진료비용 할인/면제 광고", ReferenceID: "ML56-13"},
	{Phrase: "외국인환자", RiskLevel: RiskMedium, ViolationType: "외국인환자 유치 국내 광고", ReferenceID: "ML56-12"},
	{Phrase: "의료관광", RiskLevel: RiskMedium, ViolationType: "외국인환자 유치 국내 광고", ReferenceID: "ML56-12"},
	{Phrase: "medical tourism", RiskLevel: RiskMedium, ViolationType: "외국인환자 유치 국내 광고", ReferenceID: "ML56-12"},
}

// DefaultRules returns a copy of the forbidden phrases the service is seeded with.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}
