package classification

import "github.com/Veraticus/paysnap/internal/model"

// DefaultKeywordSets returns the built-in category table. Order matters: the
// first set with a matching keyword decides the category.
func DefaultKeywordSets() []KeywordSet {
	return []KeywordSet{
		{
			Category: model.CategoryFood,
			Keywords: []string{
				"餐厅", "美食", "饭店", "小吃", "火锅", "烧烤", "快餐", "外卖",
				"食堂", "早餐", "午餐", "晚餐", "食品", "零食", "水果",
				"甜点", "烘焙", "咖啡", "茶", "饮料", "酒水",
			},
		},
		{
			Category: model.CategoryShopping,
			Keywords: []string{
				"商场", "超市", "百货", "购物", "专卖店", "电商", "网购", "淘宝",
				"京东", "拼多多", "服装", "鞋帽", "箱包", "化妆品", "手机", "电器",
				"数码", "家具", "文具", "图书", "药店",
			},
		},
		{
			Category: model.CategoryTransport,
			Keywords: []string{
				"公交", "地铁", "出租车", "打车", "滴滴", "高铁", "火车", "飞机",
				"机票", "汽车", "加油", "停车", "高速", "过路费", "共享单车",
			},
		},
		{
			Category: model.CategoryEntertainment,
			Keywords: []string{
				"电影", "游戏", "KTV", "酒吧", "演唱会", "音乐", "剧场", "门票",
				"景点", "旅游", "健身", "运动", "游泳", "球类", "玩具",
			},
		},
		{
			Category: model.CategoryMedical,
			Keywords: []string{
				"医院", "诊所", "医疗", "药店", "药物", "保健", "体检", "牙科",
				"眼科", "理疗", "中医", "西医", "门诊", "住院", "手术",
			},
		},
		{
			Category: model.CategoryHousing,
			Keywords: []string{
				"房租", "水电", "燃气", "物业", "宽带", "装修", "家居", "家电",
				"家具", "日用品", "清洁", "维修", "搬家", "酒店", "住宿",
			},
		},
	}
}
