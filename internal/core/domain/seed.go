package domain

// seedCreatedAt is the creation date stamped on built-in knowledge base records.
const seedCreatedAt = "2024-11-28"

// SeedRecords returns the built-in e-commerce knowledge base.
// Records carry no IDs or embeddings; the store and embedder assign them on insert.
func SeedRecords() []IndexedRecord {
	seed := []struct {
		text, filename, topic, source string
	}{
		{
			"Our return policy allows customers to return items within 30 days of purchase. " +
				"All items must be in original condition with tags attached. Refunds will be processed " +
				"within 5-7 business days after we receive the returned item. For defective items, " +
				"we offer free return shipping.",
			"return_policy.pdf", "returns", "policy_documents",
		},
		{
			"We offer several shipping options: Standard shipping (5-7 business days) for $5.99, " +
				"Express shipping (2-3 business days) for $12.99, and Overnight shipping (1 business day) " +
				"for $24.99. Free standard shipping is available on orders over $50.",
			"shipping_guide.pdf", "shipping", "customer_service",
		},
		{
			"Customer service is available Monday through Friday from 9 AM to 6 PM EST. You can " +
				"contact us via email at support@ecommerce.com, phone at 1-800-SHOP-NOW, or live chat " +
				"on our website. We respond to emails within 24 hours.",
			"contact_info.pdf", "support", "customer_service",
		},
		{
			"Our size guide helps you find the perfect fit. For clothing: XS (0-2), S (4-6), M (8-10), " +
				"L (12-14), XL (16-18). For shoes: we offer sizes 5-12 in both standard and wide widths. " +
				"Measurements should be taken without clothing for accuracy.",
			"size_guide.pdf", "sizing", "product_info",
		},
		{
			"We offer a 1-year warranty on all electronic items and a 90-day warranty on clothing and " +
				"accessories. Warranty covers manufacturing defects but does not cover damage from normal " +
				"wear and tear or misuse.",
			"warranty_info.pdf", "warranty", "policy_documents",
		},
		{
			"Payment methods accepted include all major credit cards (Visa, MasterCard, American Express, " +
				"Discover), PayPal, Apple Pay, Google Pay, and buy-now-pay-later options through Klarna " +
				"and Afterpay.",
			"payment_methods.pdf", "payment", "billing",
		},
		{
			"Frequently Asked Questions: Q: Can I track my order? A: Yes, you'll receive a tracking " +
				"number via email once your order ships. Q: Do you offer gift wrapping? A: Yes, gift " +
				"wrapping is available for $3.99.",
			"faq.pdf", "faq", "customer_service",
		},
	}

	records := make([]IndexedRecord, 0, len(seed))
	for _, s := range seed {
		records = append(records, IndexedRecord{
			Text: s.text,
			Metadata: map[string]any{
				MetaFilename:  s.filename,
				MetaTopic:     s.topic,
				MetaSource:    s.source,
				MetaCreatedAt: seedCreatedAt,
			},
		})
	}
	return records
}
