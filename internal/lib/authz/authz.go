// Package authz содержит единый предикат проверки прав на ресурс.
// Все обработчики с правилом "владелец или админ" используют CanManage,
// чтобы проверка не дублировалась по коду.
package authz

// CanManage сообщает, может ли пользователь с ролью role и идентификатором
// actorUID управлять ресурсом, принадлежащим ownerUID.
func CanManage(role, actorUID, ownerUID string) bool {
	return role == "admin" || actorUID == ownerUID
}
