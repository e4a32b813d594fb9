package catalog

import "sneaker-storefront/models"

func price(v int64) *int64 { return &v }
func rating(v float64) *float64 { return &v }

// seedProducts is the storefront's static assortment.
var seedProducts = []models.Product{
	{
		ID:          1,
		Name:        "Air Max 97",
		Brand:       "Nike",
		Price:       12990,
		OldPrice:    price(15990),
		Image:       "https://static.nike.com/a/images/c_limit,w_592,f_auto/t_product_v1/9089e11a-1168-48ae-add0-a05dadfb2134/air-max-97-mens-shoes-LJmK45.png",
		Category:    "running",
		IsNew:       true,
		IsFeatured:  true,
		Rating:      rating(4.8),
		Sizes:       []int{40, 41, 42, 43, 44, 45},
		Colors:      []string{"black", "white", "gray"},
		Description: "The Nike Air Max 97 keeps a sneaker icon going strong with the same design details that made it famous: water-ripple lines, reflective piping and full-length Max Air cushioning.",
	},
	{
		ID:          2,
		Name:        "Ultraboost 22",
		Brand:       "Adidas",
		Price:       14990,
		Image:       "https://assets.adidas.com/images/h_840,f_auto,q_auto,fl_lossy,c_fill,g_auto/fbaf991a78bc4896a3e9ad7800abcec6_9366/Ultraboost_22_Shoes_Black_GZ0127_01_standard.jpg",
		Category:    "running",
		IsFeatured:  true,
		Rating:      rating(4.9),
		Sizes:       []int{39, 40, 41, 42, 43, 44, 45, 46},
		Colors:      []string{"black", "white", "blue"},
		Description: "These Ultraboost running shoes serve up comfort and responsive energy return. The shoe's upper is made with yarn containing 50% Parley Ocean Plastic.",
	},
	{
		ID:          3,
		Name:        "Old Skool",
		Brand:       "Vans",
		Price:       6990,
		Image:       "https://images.vans.com/is/image/VansEU/VN000D3HY28-HERO?wid=800&hei=800&fmt=jpg&qlt=85,1&op_sharpen=0&resMode=sharp2&op_usm=1,1,1,0",
		Category:    "casual",
		IsFeatured:  true,
		Rating:      rating(4.7),
		Sizes:       []int{38, 39, 40, 41, 42, 43, 44},
		Colors:      []string{"black", "blue", "red"},
		Description: "The Old Skool, the classic skate shoe and the first to bear the iconic side stripe, has a low-top lace-up silhouette with a durable suede and canvas upper, padded tongue and lining and the signature Waffle Outsole.",
	},
	{
		ID:          4,
		Name:        "Chuck Taylor All Star",
		Brand:       "Converse",
		Price:       5990,
		Image:       "https://www.converse.com/dw/image/v2/BCZC_PRD/on/demandware.static/-/Sites-cnv-master-catalog/default/dw33f761a4/images/a_107/M9160_A_107X1.jpg",
		Category:    "casual",
		Rating:      rating(4.6),
		Sizes:       []int{36, 37, 38, 39, 40, 41, 42, 43, 44, 45},
		Colors:      []string{"black", "white", "red", "navy"},
		Description: "The Converse Chuck Taylor All Star is the one that started it all. The original basketball shoe, first created in 1917, has become a style icon.",
	},
	{
		ID:          5,
		Name:        "Suede Classic",
		Brand:       "Puma",
		Price:       7990,
		Image:       "https://images.puma.com/image/upload/f_auto,q_auto,b_rgb:fafafa,w_600,h_600/global/374915/01/sv01/fnd/EEA/fmt/png",
		Category:    "casual",
		IsFeatured:  true,
		Rating:      rating(4.5),
		Sizes:       []int{40, 41, 42, 43, 44, 45},
		Colors:      []string{"black", "blue", "red", "green"},
		Description: "The Suede has been kicking around for a long time. It's been worn by icons of every generation, and it's stayed classic through it all.",
	},
	{
		ID:          6,
		Name:        "574 Core",
		Brand:       "New Balance",
		Price:       8990,
		OldPrice:    price(10990),
		Image:       "https://nb.scene7.com/is/image/NB/u574laa_nb_02_i?$pdpflexf2$&qlt=80&fmt=webp&wid=440&hei=440",
		Category:    "lifestyle",
		IsNew:       true,
		Rating:      rating(4.7),
		Sizes:       []int{40, 41, 42, 43, 44, 45},
		Colors:      []string{"navy", "gray", "green"},
		Description: "The 574 Core features clean lines and a classic design made from premium suede and mesh, with ENCAP midsole cushioning for support and durability.",
	},
	{
		ID:          7,
		Name:        "Blazer Mid '77",
		Brand:       "Nike",
		Price:       9990,
		Image:       "https://static.nike.com/a/images/c_limit,w_592,f_auto/t_product_v1/f45cec26-24b3-4621-ad9f-667e06c58d8e/blazer-mid-77-vintage-mens-shoes-nw30B2.png",
		Category:    "lifestyle",
		Rating:      rating(4.8),
		Sizes:       []int{40, 41, 42, 43, 44, 45},
		Colors:      []string{"white", "black"},
		Description: "In the '70s, Nike was the new shoe on the block, still testing prototypes on elite runners. The design improved over the years, but the name stuck.",
	},
	{
		ID:          8,
		Name:        "Classic Leather",
		Brand:       "Reebok",
		Price:       7990,
		OldPrice:    price(9990),
		Image:       "https://assets.reebok.com/images/w_600,f_auto,q_auto/4354df5e0e774de5a3f9aa64014397a3_9366/Classic_Leather_Shoes_White_2232.jpg",
		Category:    "lifestyle",
		Rating:      rating(4.6),
		Sizes:       []int{39, 40, 41, 42, 43, 44, 45},
		Colors:      []string{"white", "black", "gray"},
		Description: "Originally designed for running, these shoes have become a street style staple. The supple leather upper gives a premium look and a cushioned midsole keeps you comfortable all day.",
	},
}

var seedBrands = []models.Brand{
	{ID: 1, Name: "Nike", Logo: "https://1000logos.net/wp-content/uploads/2021/11/Nike-Logo.png"},
	{ID: 2, Name: "Adidas", Logo: "https://1000logos.net/wp-content/uploads/2019/07/Adidas-Logo-1991.jpg"},
	{ID: 3, Name: "Puma", Logo: "https://1000logos.net/wp-content/uploads/2017/05/PUMA-logo.jpg"},
	{ID: 4, Name: "New Balance", Logo: "https://1000logos.net/wp-content/uploads/2018/10/New-Balance-logo.jpg"},
	{ID: 5, Name: "Vans", Logo: "https://1000logos.net/wp-content/uploads/2021/04/Vans-logo.png"},
	{ID: 6, Name: "Converse", Logo: "https://1000logos.net/wp-content/uploads/2021/04/Converse-logo.png"},
	{ID: 7, Name: "Reebok", Logo: "https://1000logos.net/wp-content/uploads/2017/05/Reebok-logo.jpg"},
}

var seedCategories = []models.Category{
	{ID: 1, Name: "running", Label: "Для бега", Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=2070&q=80"},
	{ID: 2, Name: "casual", Label: "Повседневные", Image: "https://images.unsplash.com/photo-1549298916-b41d501d3772?auto=format&fit=crop&w=2012&q=80"},
	{ID: 3, Name: "lifestyle", Label: "Лайфстайл", Image: "https://images.unsplash.com/photo-1600269452121-4f2416e55c28?auto=format&fit=crop&w=1965&q=80"},
}
