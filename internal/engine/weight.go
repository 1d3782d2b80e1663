package engine

import (
	"shipping-quote-service/internal/models"
)

// defaultWeightPoints is used when an item's size class code does not resolve
// to a known active class (equivalent to MEDIUM).
const defaultWeightPoints = 2

// totalWeightPoints converts a group of cart items into an abstract
// weight-points total: sum of quantity times the item's per-unit points.
func (c *Calculator) totalWeightPoints(items []models.CartItem, rules *RuleSet) int {
	total := 0
	for _, item := range items {
		points := defaultWeightPoints
		if item.SizeClassCode != "" {
			for i := range rules.SizeClasses {
				class := &rules.SizeClasses[i]
				if class.IsActive && class.Code == item.SizeClassCode {
					points = class.WeightPoints
					break
				}
			}
		}
		total += item.Quantity * points
	}
	return total
}

// subtotal sums unitPrice * quantity over a group of items, in minor units
func subtotal(items []models.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// maxLeadTimeDays returns the maximum lead time across made-to-order items
// with a set positive lead time, or 0 if there are none. Lead times do not
// add up; items are produced in parallel.
func maxLeadTimeDays(items []models.CartItem) int {
	max := 0
	for _, item := range items {
		if !item.MadeToOrder || item.LeadTimeDays == nil {
			continue
		}
		if *item.LeadTimeDays > max {
			max = *item.LeadTimeDays
		}
	}
	return max
}
