package entity

import "sort"

func sortProducts(products []*Product, less func(a, b *Product) bool) {
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}
