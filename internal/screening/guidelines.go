package screening

// Guidelines is the statutory summary given to the judge alongside each image.
const Guidelines = `적용 우선순위: 의료법(최상위) → 의료법 시행령(위임 사항 구체화) → 보건복지부 실무 가이드(사례/체크리스트) → 자율심의기구 심의기준/사례(운영 경향)

1) 의료법 제56조: 의료광고의 금지 등 (금지 내용 최상위 룰)
1-1. 행위 주체 제한(누가 광고할 수 있나)
- 의료기관 개설자 / 의료기관의 장 / 의료인(= 의료인등)이 아닌 자는 의료광고를 할 수 없음
- 의료광고는 신문·잡지·음성·영상·인터넷·인쇄물·간판 등 매체를 통해 의료행위/의료기관/의료인등에 관한 정보를 소비자에게 나타내거나 알리는 행위를 의미

1-2. 금지되는 의료광고 유형(총 15개)
1) 평가를 받지 않은 신의료기술 광고
2) 치료경험담 등 치료효과 오인/현혹 우려
3) 거짓 내용 표시
4) 다른 의료인등의 기능/진료방법과 비교 광고
5) 비방 광고
6) 수술 장면 등 직접 시술행위 노출
7) 심각한 부작용 등 중요정보 누락
8) 객관적 사실의 과장
9) 법적 근거 없는 자격/명칭 표방
10) 기사 또는 전문가 의견 형태로 포장된 광고
11) 사전심의 미이행 또는 심의받은 내용과 다른 광고
12) 외국인환자 유치를 위한 국내 광고
13) 소비자를 속이거나 오인시키는 비급여 진료비용 할인/면제 광고
14) 상장·감사장 또는 인증·보증·추천 표현을 이용한 광고
15) 보건·건전한 의료경쟁 질서/소비자 피해 우려가 있는 대통령령으로 정하는 광고

1-3. 금지되는 광고 방법(매체/채널 제한)
- 방송법상 ‘방송’ 방법으로는 의료광고를 할 수 없음
- 대통령령으로 정하는 방법도 제한 가능

2) 의료법 제57조: 의료광고의 심의 (사전심의 절차 룰)
2-1. 사전심의 트리거 매체
1) 신문·인터넷신문·정기간행물
2) 옥외광고물 중 현수막/벽보/전단/교통시설·교통수단 표시(내부표시 포함, 영상/음성/음향 조합 포함)
3) 전광판
4) 대통령령으로 정하는 인터넷 매체(앱 포함)
5) 그 밖에 대통령령으로 정하는 광고매체

2-2. 심의 수행 기관
- 의사회·치과의사회·한의사회
- 소비자기본법상 등록 소비자단체 중 대통령령 기준 충족 단체

2-3. 심의 예외(기본정보 광고)
- 의료기관 명칭·소재지·전화번호
- 의료기관 진료과목(법상 진료과목)
- 소속 의료인의 성명·성별·면허 종류
- 그 밖에 대통령령으로 정하는 사항

2-4. 심의 운영 규칙 요지
- 자율심의기구는 심의 기준을 상호 협의해 마련
- 심의 신청자는 수수료 납부
- 심의 유효기간: 승인일로부터 3년
- 계속 광고하려면 만료 6개월 전 심의 신청
- 심의업무는 공정/투명해야 함

3) 의료법 제57조의2: 의료광고에 관한 심의위원회
3-1. 자율심의기구는 심의위원회 설치·운영 필요
3-2. 위원회 3개 트랙(의료/치과/한방)
3-3. 설치·운영 가능 주체 및 범위 제한
3-4. 위원 구성 요건(외부성 비율 등)

4) 의료법 시행령 제24조: 의료광고의 심의(매체·자격 요건 구체화)
4-1. 대통령령으로 정하는 인터넷 매체 정의
- 인터넷뉴스서비스, 방송사업자 홈페이지, 방송프로그램 중심 매체, 일평균 이용자 10만명 이상 서비스 등
4-2. 대통령령으로 정하는 광고매체 정의
- 일평균 이용자 10만명 이상 SNS 제공 광고매체
4-3. 자율심의기구 조직 요건(전담부서, 상근 3명 이상 등)
4-4. 소비자단체 추가 기준(공정위 등록, 목적/업무범위에 의료/광고 포함)
4-5. 신고 절차(복지부령에 따른 신고서/서류 제출)`
