// Package repository define los contratos de dominio del servicio.
//
// Estas interfaces representan contratos de negocio, independientes del
// almacenamiento subyacente (memoria, PostgreSQL, MySQL, SQLite).
//
// Las implementaciones concretas viven en internal/store/adapters/.
//
// Arquitectura:
//
//	┌─────────────────────────────────────────────────────┐
//	│           Services / Controllers                    │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│        domain/repository (interfaces)               │
//	│   ResourceStore[Book], [Item], [User]               │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	    ┌──────────────┬────┴─────────┬──────────────┐
//	    ▼              ▼              ▼              ▼
//	┌─────────┐  ┌──────────┐  ┌──────────┐  ┌──────────┐
//	│ memory  │  │    pg    │  │  mysql   │  │  sqlite  │
//	└─────────┘  └──────────┘  └──────────┘  └──────────┘
//
// Convenciones:
//   - Los IDs son enteros provistos por el caller, nunca autogenerados
//   - Context siempre es el primer parámetro
//   - Errores de dominio están en errors.go
package repository
