package storage

const (
	listTransactionsSQL = `
SELECT id, amount_cents, category, type, date, note, photo_ref
FROM transactions
ORDER BY id DESC`

	getTransactionSQL = `
SELECT id, amount_cents, category, type, date, note, photo_ref
FROM transactions
WHERE id = ?`

	insertTransactionSQL = `
INSERT INTO transactions (amount_cents, category, type, date, note, photo_ref)
VALUES (?, ?, ?, ?, ?, ?)`

	updateTransactionSQL = `
UPDATE transactions
SET amount_cents = ?, category = ?, type = ?, date = ?, note = ?, photo_ref = ?
WHERE id = ?`

	deleteTransactionSQL = `DELETE FROM transactions WHERE id = ?`

	listCategoriesSQL = `
SELECT id, name, color, icon
FROM categories
ORDER BY id ASC`

	getCategorySQL = `
SELECT id, name, color, icon
FROM categories
WHERE id = ?`

	insertCategorySQL = `INSERT INTO categories (name, color, icon) VALUES (?, ?, ?)`

	updateCategorySQL = `UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ?`

	deleteCategorySQL = `DELETE FROM categories WHERE id = ?`

	getMirrorIDSQL = `SELECT mirror_id FROM mirror_mappings WHERE local_id = ?`

	setMirrorIDSQL = `
INSERT INTO mirror_mappings (local_id, mirror_id)
VALUES (?, ?)
ON CONFLICT(local_id) DO UPDATE SET mirror_id = excluded.mirror_id, updated_at = CURRENT_TIMESTAMP`

	deleteMirrorIDSQL = `DELETE FROM mirror_mappings WHERE local_id = ?`
)
