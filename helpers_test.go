package cascade

func shopTree() Tree {
	return Tree{
		Category("electronics", "Electronics",
			Leaf("phones", "Phones"),
			Leaf("laptops", "Laptops"),
		),
		Category("clothing", "Clothing",
			Leaf("mens", "Mens"),
			Leaf("womens", "Womens"),
		),
	}
}

func minerTree() Tree {
	return Tree{
		Category("type", "Type",
			Leaf("S19XP", "Antminer S19XP"),
			Leaf("S19", "Antminer S19"),
			Leaf("M30S", "Whatsminer M30S"),
		),
		Category("status", "Status",
			Leaf("active", "Active"),
			Leaf("pending", "Pending"),
			Leaf("resolved", "Resolved"),
		),
	}
}

func p(values ...any) Path {
	return NewPath(values...)
}
