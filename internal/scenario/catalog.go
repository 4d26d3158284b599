package scenario

import "github.com/mcpseud/coop-evolution-LLMs/internal/game"

// The built-in catalog: three business framings per game type. Descriptions
// deliberately avoid game-theory vocabulary so agents respond to the
// situation, not the label.
var catalog = map[game.Type][]Scenario{
	game.PrisonersDilemma: {
		{
			GameType: game.PrisonersDilemma,
			Name:     "Price Competition",
			Description: "You and a competitor are the only two firms selling a popular product in your market. " +
				"You're both considering whether to maintain current prices or cut prices to gain market share. " +
				"If you both maintain prices, you'll both enjoy healthy profits. " +
				"If one cuts prices while the other maintains, the price-cutter gains significant market share. " +
				"If you both cut prices, you'll end up in a price war with reduced profits for both.",
			Options:     []string{"maintain prices", "cut prices"},
			MoveMapping: map[string]game.Move{"maintain prices": game.Cooperate, "cut prices": game.Defect},
		},
		{
			GameType: game.PrisonersDilemma,
			Name:     "R&D Information Sharing",
			Description: "Your company and another firm are working on similar technologies. " +
				"You could share research findings to accelerate progress for both, or keep your research secret. " +
				"Mutual sharing would benefit both companies through faster innovation. " +
				"If one shares while the other doesn't, the non-sharer gets a competitive advantage. " +
				"If neither shares, progress is slower for both.",
			Options:     []string{"share research", "keep secret"},
			MoveMapping: map[string]game.Move{"share research": game.Cooperate, "keep secret": game.Defect},
		},
		{
			GameType: game.PrisonersDilemma,
			Name:     "Supplier Contract Negotiation",
			Description: "You're negotiating a long-term contract with a key supplier who also supplies your competitor. " +
				"You can offer fair terms that ensure stable supply for both companies, " +
				"or you can try to lock in exclusive terms that disadvantage your competitor. " +
				"If both offer fair terms, the supplier maintains good relationships with both. " +
				"If one tries for exclusivity while the other doesn't, they might secure an advantage. " +
				"If both push for exclusivity, the supplier may raise prices for both or seek other customers.",
			Options:     []string{"fair terms", "exclusive terms"},
			MoveMapping: map[string]game.Move{"fair terms": game.Cooperate, "exclusive terms": game.Defect},
		},
	},
	game.StagHunt: {
		{
			GameType: game.StagHunt,
			Name:     "Joint Venture Investment",
			Description: "You and another company are considering a joint venture that requires significant investment from both parties. " +
				"You can commit to the full investment for the joint venture, which will only succeed if both invest fully. " +
				"Alternatively, you can pursue a smaller independent project that guarantees modest returns regardless of their decision. " +
				"The joint venture would yield excellent returns if both commit, but if only one invests fully, they lose their investment. " +
				"The independent project is safe but offers much lower returns.",
			Options:     []string{"joint venture", "independent project"},
			MoveMapping: map[string]game.Move{"joint venture": game.Stag, "independent project": game.Hare},
		},
		{
			GameType: game.StagHunt,
			Name:     "Industry Standard Development",
			Description: "Your company and a competitor are deciding whether to collaborate on developing a new industry standard. " +
				"Full collaboration would create a superior standard benefiting both companies greatly. " +
				"However, this requires significant resource commitment and trust. " +
				"Alternatively, you could develop your own proprietary solution, which is guaranteed to work but offers limited market potential. " +
				"If only one company commits to the standard while the other develops independently, the committing company wastes resources.",
			Options:     []string{"develop standard together", "proprietary solution"},
			MoveMapping: map[string]game.Move{"develop standard together": game.Stag, "proprietary solution": game.Hare},
		},
		{
			GameType: game.StagHunt,
			Name:     "Market Expansion Strategy",
			Description: "Two companies are considering whether to jointly enter an expensive new international market. " +
				"Joint entry would allow cost-sharing and greater market impact, yielding high returns if both commit. " +
				"Each could instead focus on expanding in their current domestic market with guaranteed moderate growth. " +
				"Solo entry into the international market would be too costly and likely fail. " +
				"The domestic expansion is safer but limits growth potential.",
			Options:     []string{"international partnership", "domestic expansion"},
			MoveMapping: map[string]game.Move{"international partnership": game.Stag, "domestic expansion": game.Hare},
		},
	},
	game.HawkDove: {
		{
			GameType: game.HawkDove,
			Name:     "Patent Dispute",
			Description: "Your company and another firm both claim rights to a valuable patent. " +
				"You can aggressively pursue litigation to secure exclusive rights, " +
				"or you can propose a licensing agreement to share the technology. " +
				"If one pursues litigation while the other seeks agreement, the aggressive party likely wins exclusive rights. " +
				"If both litigate aggressively, you'll both incur massive legal costs with uncertain outcomes. " +
				"If both seek agreement, you can quickly establish a mutually beneficial licensing deal.",
			Options:     []string{"aggressive litigation", "seek agreement"},
			MoveMapping: map[string]game.Move{"aggressive litigation": game.Hawk, "seek agreement": game.Dove},
		},
		{
			GameType: game.HawkDove,
			Name:     "Market Territory Conflict",
			Description: "Your company and a competitor are both eyeing the same lucrative geographic market. " +
				"You can aggressively expand into the territory with heavy marketing and pricing strategies, " +
				"or you can propose dividing the territory or finding alternative markets. " +
				"If one expands aggressively while the other yields, the aggressive company dominates the market. " +
				"If both expand aggressively, you'll face a costly market war hurting both companies' profits. " +
				"If both seek alternatives, you can both find profitable opportunities without conflict.",
			Options:     []string{"aggressive expansion", "seek alternatives"},
			MoveMapping: map[string]game.Move{"aggressive expansion": game.Hawk, "seek alternatives": game.Dove},
		},
		{
			GameType: game.HawkDove,
			Name:     "Talent Acquisition Battle",
			Description: "Both your company and a competitor are trying to hire the same team of talented engineers. " +
				"You can make an aggressive offer well above market rate to secure them, " +
				"or you can make a reasonable offer and focus on your company's other advantages. " +
				"If one company makes an aggressive offer while the other doesn't, they get the team. " +
				"If both make aggressive offers, you'll start a bidding war that inflates salaries industry-wide. " +
				"If both make reasonable offers, the team chooses based on other factors, and salary inflation is avoided.",
			Options:     []string{"aggressive offer", "reasonable offer"},
			MoveMapping: map[string]game.Move{"aggressive offer": game.Hawk, "reasonable offer": game.Dove},
		},
	},
	game.Coordination: {
		{
			GameType: game.Coordination,
			Name:     "Technology Platform Choice",
			Description: "Your company and a key partner need to choose a technology platform for a joint project. " +
				"There are two equally good options: Platform A and Platform B. " +
				"The critical factor is that you both choose the same platform for compatibility. " +
				"If you choose different platforms, the project will face serious integration challenges. " +
				"Both platforms are equally capable, so the key is coordination.",
			Options:     []string{"Platform A", "Platform B"},
			MoveMapping: map[string]game.Move{"Platform A": game.OptionA, "Platform B": game.OptionB},
		},
		{
			GameType: game.Coordination,
			Name:     "Meeting Scheduling System",
			Description: "Your division and another need to adopt a scheduling system for inter-departmental meetings. " +
				"Two systems are available: System Alpha (morning-optimized) and System Beta (afternoon-optimized). " +
				"Both systems work well, but they're incompatible with each other. " +
				"If both divisions choose the same system, scheduling is seamless. " +
				"If you choose different systems, coordination becomes very difficult.",
			Options:     []string{"System Alpha", "System Beta"},
			MoveMapping: map[string]game.Move{"System Alpha": game.OptionA, "System Beta": game.OptionB},
		},
		{
			GameType: game.Coordination,
			Name:     "Trade Show Participation",
			Description: "Your company and a complementary business are deciding which major trade show to attend this year. " +
				"There are two equally prestigious shows: the Spring Expo and the Fall Summit. " +
				"Attending the same show would allow valuable collaboration and joint presentations. " +
				"Attending different shows means missing these synergy opportunities. " +
				"Both shows offer similar visibility and networking benefits.",
			Options:     []string{"Spring Expo", "Fall Summit"},
			MoveMapping: map[string]game.Move{"Spring Expo": game.OptionA, "Fall Summit": game.OptionB},
		},
	},
}
