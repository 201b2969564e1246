package knowledge

import "github.com/cloo-solutions/relicguide/internal/domain"

// DefaultRelics returns the built-in knowledge base.
func DefaultRelics() []domain.Relic {
	return []domain.Relic{
		{
			ID:      "bronze_ding",
			Name:    "巴渝青铜祭祀鼎",
			Era:     "战国晚期",
			Summary: "典型的巴渝地区青铜礼器，用于重要祭祀场合，体现了巴人独特的审美与信仰。",
			Story:   "我曾被埋藏在三峡的泥土之下两千年，见证了巴国的兴衰。",
			Craft:   "采用复杂的范铸法制作，纹饰精美，代表了当时最高的冶金水平。",
		},
		{
			ID:      "rock_carving",
			Name:    "大足石刻菩萨造像",
			Era:     "南宋",
			Summary: "以精细入微的石刻工艺著称，体现了宋代石刻艺术与宗教思想的融合，是世界文化遗产。",
			Story:   "匠人们悬在峭壁之上，一锤一凿刻出了我的面容，我是慈悲与智慧的化身。",
			Craft:   "利用山势岩层，采用圆雕与高浮雕结合，色彩历经千年依然依稀可见。",
		},
		{
			ID:      "boat_model",
			Name:    "三峡古航运木船",
			Era:     "明清时期",
			Summary: "再现古代三峡航运场景，是理解川江号子与水运历史的重要实物。",
			Story:   "我承载着盐巴与茶叶，逆流而上，见证了纤夫们的汗水与号子声。",
			Craft:   "采用柏木制作，榫卯结构，船底设计适应了三峡的险滩急流。",
		},
	}
}

// DefaultAliases returns the built-in video alias table.
func DefaultAliases() []domain.VideoAlias {
	return []domain.VideoAlias{
		{Phrase: "大足石刻制造", FileName: "2.mp4"},
		{Phrase: "石刻", FileName: "2.mp4"},
		{Phrase: "青铜鼎", FileName: "1.mp4"},
		{Phrase: "三星堆", FileName: "3.mp4"},
	}
}
