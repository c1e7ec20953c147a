// ABOUTME: The bank of O/X fitness-myth questions shown one per day.
// ABOUTME: Question order is stable; stored answers refer to bank positions.
package quiz

// Bank is the fixed question list.
var Bank = []Question{
	{
		Statement:   "여성이 무거운 중량 운동을 하면 몸이 우락부락해진다.",
		Answer:      ChoiceX,
		Explanation: "많은 여성이 걱정하지만, 현실적으로 여성은 남성처럼 크고 우람한 근육을 만들 수 있는 테스토스테론 수치를 가지고 있지 않습니다. 대신 근력 운동은 여성이 순수 근육을 만드는 데 도움을 주며, 이는 신진대사를 높이고 골밀도를 개선하며 탄탄하고 운동적인 몸매를 만듭니다. '우락부락한' 몸매를 만들기 위해서는 매우 특정한 고강도 훈련과 칼로리 과잉 섭취가 필요한데, 이는 우연히 일어나지 않습니다.",
		Takeaway:    "무게를 두려워하지 마세요! 근력 운동은 여성 건강에 매우 중요하며, 당신을 우락부락하게 만들기보다는 강하고 탄탄하게 보이도록 도와줄 것입니다.",
	},
	{
		Statement:   "특정 부위의 지방만 뺄 수 있다.",
		Answer:      ChoiceX,
		Explanation: "안타깝게도, 우리 몸이 어느 부위의 지방을 먼저 뺄지 선택할 수는 없습니다. 끝없는 크런치 운동은 복근을 강화할 수는 있지만, 그 위에 덮인 지방을 특정적으로 태우지는 못합니다. 지방 감량은 식단과 운동을 통해 지속적인 칼로리 결손 상태일 때 몸 전체적으로 일어납니다. 어느 부위의 지방이 먼저 빠질지는 대체로 유전적으로 결정됩니다.",
		Takeaway:    "전체적인 지방 감량을 위해 전신 운동 루틴과 건강한 식단에 집중하세요. 특정 부위 감량은 시간이 지나면서 자연스럽게 이루어질 것입니다.",
	},
	{
		Statement:   "고통 없이는 얻는 것도 없다 (No Pain, No Gain).",
		Answer:      ChoiceX,
		Explanation: "힘든 운동 후 약간의 근육통(지연성 근육통 또는 DOMS)은 정상이지만, 날카롭고 찌르는 듯하거나 지속적인 통증은 정상이 아닙니다. 통증은 무언가 잘못되었다는 몸의 신호입니다. 실제 통증을 참고 운동을 계속하면 심각한 부상으로 이어져 운동 진행을 크게 후퇴시킬 수 있습니다.",
		Takeaway:    "몸의 소리에 귀를 기울이세요. 근육 피로와 통증을 구별하세요. 휴식과 회복은 운동 자체만큼이나 중요합니다.",
	},
	{
		Statement:   "체중 감량을 위한 유일한 방법은 유산소 운동이다.",
		Answer:      ChoiceX,
		Explanation: "유산소 운동은 칼로리를 태우고 심장 건강을 개선하는 데 훌륭하지만, 이것이 퍼즐의 유일한 조각은 아닙니다. 장기적인 체중 관리를 위해서는 근력 운동이 똑같이, 혹은 더 중요할 수 있습니다. 근육을 만들면 휴식 대사율이 증가하여 운동하지 않을 때에도 더 많은 칼로리를 소모하게 됩니다. 유산소와 근력 운동의 조합이 가장 효과적인 접근 방식입니다.",
		Takeaway:    "최적의 체중 감량과 신체 구성을 위해, 주 2-3회의 근력 운동과 함께 규칙적인 유산소 운동을 병행하세요.",
	},
	{
		Statement:   "땀을 많이 흘릴수록 더 많은 지방을 태우는 것이다.",
		Answer:      ChoiceX,
		Explanation: "땀은 지방이 타는 지표가 아니라, 몸의 체온 조절 메커니즘입니다. 땀의 양은 운동 강도, 온도, 습도, 유전 등 다양한 요인에 따라 달라집니다. 땀으로 인한 체중 감소는 대부분 수분 손실이며, 물을 마시면 다시 회복됩니다. 지방 연소는 칼로리 소모와 직접적으로 관련이 있습니다.",
		Takeaway:    "땀의 양에 집착하지 말고, 운동의 질과 꾸준함에 집중하세요. 운동 중 수분 보충은 필수입니다.",
	},
}
