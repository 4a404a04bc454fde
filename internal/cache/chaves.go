// internal/cache/chaves.go
package cache

import "fmt"

// Chaves padronizadas, sempre escopadas por organização.

func ChaveDashboard(orgID uint) string { return fmt.Sprintf("dashboard:%d", orgID) }

func ChaveContas(orgID uint, tipo string) string { return fmt.Sprintf("contas:%d:%s", orgID, tipo) }

func PrefixoContas(orgID uint) string { return fmt.Sprintf("contas:%d:", orgID) }
