package repo

// Shared predicates: $1/$2 bound the window half open, the store array is NULL for all stores
const (
	sqlStores = `
		SELECT id, name
		FROM stores
		ORDER BY name, id
	`

	sqlTotals = `
		WITH sales AS (
			SELECT
				COALESCE(SUM(t.total), 0)::numeric AS total_sales,
				COUNT(DISTINCT t.ref_id)           AS transactions
			FROM transactions t
			WHERE t.transaction_time >= $1 AND t.transaction_time < $2
				AND NOT t.is_cancelled
				AND ($3::text[] IS NULL OR t.store_id = ANY($3::text[]))
		),
		profit AS (
			SELECT
				COALESCE(SUM(i.item_total - COALESCE(p.cost, 0) * i.quantity), 0)::numeric AS total_profit
			FROM transaction_items i
			JOIN transactions t ON t.ref_id = i.transaction_ref_id
			JOIN products p     ON p.id = i.product_id
			WHERE t.transaction_time >= $1 AND t.transaction_time < $2
				AND NOT t.is_cancelled
				AND ($3::text[] IS NULL OR t.store_id = ANY($3::text[]))
		)
		SELECT s.total_sales, pr.total_profit, s.transactions
		FROM sales s
		CROSS JOIN profit pr
	`

	sqlSalesByStore = `
		WITH filtered AS (
			SELECT id, name
			FROM stores
			WHERE ($5::text[] IS NULL OR id = ANY($5::text[]))
		),
		cur AS (
			SELECT s.id, s.name, COALESCE(SUM(t.total), 0)::numeric AS sales
			FROM filtered s
			LEFT JOIN transactions t ON t.store_id = s.id
				AND t.transaction_time >= $1 AND t.transaction_time < $2
				AND NOT t.is_cancelled
			GROUP BY s.id, s.name
		),
		prev AS (
			SELECT s.id, s.name, COALESCE(SUM(t.total), 0)::numeric AS sales
			FROM filtered s
			LEFT JOIN transactions t ON t.store_id = s.id
				AND t.transaction_time >= $3 AND t.transaction_time < $4
				AND NOT t.is_cancelled
			GROUP BY s.id, s.name
		)
		SELECT
			COALESCE(c.name, p.name)  AS store_name,
			COALESCE(c.sales, 0)      AS current_sales,
			COALESCE(p.sales, 0)      AS previous_sales
		FROM cur c
		FULL OUTER JOIN prev p ON c.id = p.id
		ORDER BY current_sales DESC, store_name, COALESCE(c.id, p.id)
	`

	// productWindows sums item sales per product name in both windows; $5 filters stores
	productWindows = `
		WITH cur AS (
			SELECT p.name AS key, COALESCE(SUM(i.item_total), 0)::numeric AS sales
			FROM transaction_items i
			JOIN transactions t ON t.ref_id = i.transaction_ref_id
				AND t.transaction_time >= $1 AND t.transaction_time < $2
				AND NOT t.is_cancelled
				AND ($5::text[] IS NULL OR t.store_id = ANY($5::text[]))
			JOIN products p ON p.id = i.product_id
			GROUP BY p.name
		),
		prev AS (
			SELECT p.name AS key, COALESCE(SUM(i.item_total), 0)::numeric AS sales
			FROM transaction_items i
			JOIN transactions t ON t.ref_id = i.transaction_ref_id
				AND t.transaction_time >= $3 AND t.transaction_time < $4
				AND NOT t.is_cancelled
				AND ($5::text[] IS NULL OR t.store_id = ANY($5::text[]))
			JOIN products p ON p.id = i.product_id
			GROUP BY p.name
		)
	`

	// categoryWindows is productWindows keyed by category, 'n/a' when unset
	categoryWindows = `
		WITH cur AS (
			SELECT COALESCE(p.category, 'n/a') AS key, COALESCE(SUM(i.item_total), 0)::numeric AS sales
			FROM transaction_items i
			JOIN transactions t ON t.ref_id = i.transaction_ref_id
				AND t.transaction_time >= $1 AND t.transaction_time < $2
				AND NOT t.is_cancelled
				AND ($5::text[] IS NULL OR t.store_id = ANY($5::text[]))
			JOIN products p ON p.id = i.product_id
			GROUP BY 1
		),
		prev AS (
			SELECT COALESCE(p.category, 'n/a') AS key, COALESCE(SUM(i.item_total), 0)::numeric AS sales
			FROM transaction_items i
			JOIN transactions t ON t.ref_id = i.transaction_ref_id
				AND t.transaction_time >= $3 AND t.transaction_time < $4
				AND NOT t.is_cancelled
				AND ($5::text[] IS NULL OR t.store_id = ANY($5::text[]))
			JOIN products p ON p.id = i.product_id
			GROUP BY 1
		)
	`

	// topByCurrent ranks the joined windows by current sales
	topByCurrent = `
		SELECT
			COALESCE(c.key, p.key) AS key,
			COALESCE(c.sales, 0)   AS current_sales,
			COALESCE(p.sales, 0)   AS previous_sales
		FROM cur c
		FULL OUTER JOIN prev p ON c.key = p.key
		WHERE COALESCE(c.sales, 0) > 0 OR COALESCE(p.sales, 0) > 0
		ORDER BY current_sales DESC, key
		LIMIT $6
	`

	// topByChange ranks the joined windows by absolute change; unchanged keys are left out
	topByChange = `
		SELECT
			COALESCE(c.key, p.key) AS key,
			COALESCE(c.sales, 0)   AS current_sales,
			COALESCE(p.sales, 0)   AS previous_sales
		FROM cur c
		FULL OUTER JOIN prev p ON c.key = p.key
		WHERE COALESCE(c.sales, 0) <> COALESCE(p.sales, 0)
		ORDER BY ABS(COALESCE(c.sales, 0) - COALESCE(p.sales, 0)) DESC, key
		LIMIT $6
	`

	sqlTopProducts    = productWindows + topByCurrent
	sqlTopCategories  = categoryWindows + topByCurrent
	sqlProductMovers  = productWindows + topByChange
	sqlCategoryMovers = categoryWindows + topByChange

	// $4 is the date_trunc unit, $5 the IANA zone buckets are cut in
	sqlTrend = `
		SELECT
			date_trunc($4::text, t.transaction_time AT TIME ZONE $5::text) AS bucket,
			COALESCE(SUM(t.total), 0)::numeric                           AS sales
		FROM transactions t
		WHERE t.transaction_time >= $1 AND t.transaction_time < $2
			AND NOT t.is_cancelled
			AND ($3::text[] IS NULL OR t.store_id = ANY($3::text[]))
		GROUP BY 1
		ORDER BY 1
	`
)
