package domain

// TeamMember is one entry of the project roster.
type TeamMember struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// Team is the payload served by /api/team.
type Team struct {
	CoreTeam []TeamMember `json:"core_team"`
	Members  []TeamMember `json:"members"`
}

// DefaultTeam returns the project roster.
func DefaultTeam() Team {
	return Team{
		CoreTeam: []TeamMember{
			{Name: "周川力", Role: "核心成员", Avatar: "💻"},
			{Name: "孟祥雨", Role: "核心成员", Avatar: "🧠"},
		},
		Members: []TeamMember{
			{Name: "李沁珊", Role: "团队成员", Avatar: "👾"},
			{Name: "程小芸", Role: "团队成员", Avatar: "👾"},
			{Name: "苏芯", Role: "团队成员", Avatar: "👾"},
			{Name: "刘海燕", Role: "团队成员", Avatar: "👾"},
			{Name: "孙志一", Role: "团队成员", Avatar: "👾"},
			{Name: "韦敦忆", Role: "团队成员", Avatar: "👾"},
			{Name: "雷千", Role: "团队成员", Avatar: "👾"},
			{Name: "但宜珊", Role: "团队成员", Avatar: "👾"},
		},
	}
}
