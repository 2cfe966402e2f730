package catalog

import (
	"github.com/Peterleoo/Livora/internal/entity"
)

// Seed returns the built-in listing inventory.
func Seed() []entity.Listing {
	return []entity.Listing{
		{
			Id:          "1",
			City:        "深圳市",
			Title:       "华润城润府 · 现代轻奢双卫复式",
			Location:    "南山区 · 科技园",
			Subway:      "距1号线高新园站 200m",
			Price:       16500,
			PaymentType: "押一付三",
			MatchScore:  98,
			Tags:        []string{"VR看房", "随时看房", "近地铁"},
			Facilities:  []string{"Wifi", "AirConditioner", "Washer", "TV", "Fridge", "Elevator", "Gym"},
			Specs:       entity.ListingSpecs{Beds: 2, Baths: 2, Area: 120},
		},
		{
			Id:          "2",
			City:        "杭州市",
			Title:       "滨江壹号 · 一线江景艺术大宅",
			Location:    "滨江区 · 奥体中心",
			Subway:      "距6号线江汉路站 500m",
			Price:       12800,
			PaymentType: "押一付一",
			MatchScore:  94,
			Tags:        []string{"艺术街区", "全景落地窗"},
			Facilities:  []string{"Wifi", "AirConditioner", "Washer", "Fridge", "Elevator", "Parking"},
			Specs:       entity.ListingSpecs{Beds: 1, Baths: 1, Area: 85},
		},
		{
			Id:          "3",
			City:        "长沙市",
			Title:       "城市绿洲 · 阳光三居",
			Location:    "芙蓉区 · 芙蓉广场",
			Subway:      "距2号线芙蓉广场站 400m",
			Price:       4200,
			PaymentType: "押一付三",
			MatchScore:  89,
			Tags:        []string{"公园旁", "采光好"},
			Facilities:  []string{"Wifi", "AirConditioner", "Kitchen", "Gym"},
			Specs:       entity.ListingSpecs{Beds: 3, Baths: 2, Area: 110},
		},
		{
			Id:          "3b",
			City:        "长沙市",
			Title:       "雨花中心 · 舒适两居",
			Location:    "雨花区 · 洞井",
			Subway:      "距地铁洞井站 300m",
			Price:       2800,
			PaymentType: "押一付一",
			MatchScore:  95,
			Tags:        []string{"近商圈", "性价比"},
			Facilities:  []string{"Wifi", "AirConditioner", "Washer", "Fridge"},
			Specs:       entity.ListingSpecs{Beds: 2, Baths: 1, Area: 88},
		},
		{
			Id:          "4",
			City:        "深圳市",
			Title:       "南山中心 · 极简主义单身公寓",
			Location:    "南山区 · 后海",
			Subway:      "距2号线后海站 300m",
			Price:       7800,
			PaymentType: "押一付一",
			MatchScore:  92,
			Tags:        []string{"独卫", "可养宠", "落地窗"},
			Facilities:  []string{"Wifi", "AirConditioner", "Washer", "Fridge", "PetFriendly"},
			Specs:       entity.ListingSpecs{Beds: 1, Baths: 1, Area: 45},
		},
		{
			Id:          "5",
			City:        "深圳市",
			Title:       "福田CBD · 精装两室一厅",
			Location:    "福田区 · 会展中心",
			Subway:      "距1号线会展中心站 100m",
			Price:       9500,
			PaymentType: "半年付",
			MatchScore:  88,
			Tags:        []string{"近商圈", "新装修"},
			Facilities:  []string{"Wifi", "AirConditioner", "TV", "Elevator", "Gym"},
			Specs:       entity.ListingSpecs{Beds: 2, Baths: 1, Area: 78},
		},
		{
			Id:          "6",
			City:        "深圳市",
			Title:       "深圳湾 · 海景大平层",
			Location:    "南山区 · 深圳湾",
			Subway:      "距2号线湾厦站 600m",
			Price:       25000,
			PaymentType: "押二付一",
			MatchScore:  96,
			Tags:        []string{"海景", "豪宅", "双车位"},
			Facilities:  []string{"Wifi", "AirConditioner", "SmartHome", "Parking", "Pool"},
			Specs:       entity.ListingSpecs{Beds: 4, Baths: 3, Area: 180},
		},
	}
}
