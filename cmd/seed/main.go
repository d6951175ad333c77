// seed genera un script SQL con datos de arranque: el usuario administrador
// inicial y un catálogo de ejemplo de productos y clientes.
//
// Uso: go run ./cmd/seed [email] [password]
// Por defecto usa admin@pedidos.local / admin123.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_demo.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type demoProduct struct {
	name        string
	icon        string
	unit        string
	stepAmount  string
	madeToOrder bool
}

type demoCustomer struct {
	name, searchName, phone, line1, city, postalCode string
}

func main() {
	email := "admin@pedidos.local"
	password := "admin123"
	if len(os.Args) > 1 {
		email = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hash de contraseña: %v\n", err)
		os.Exit(1)
	}

	products := []demoProduct{
		{name: "Mangos", icon: "🥭", unit: "dozen", stepAmount: "0.5"},
		{name: "Aguacates", icon: "🥑", unit: "kg", stepAmount: "0.25"},
		{name: "Queso fresco", icon: "🧀", unit: "g", stepAmount: "250"},
		{name: "Tamales", icon: "🫔", unit: "piece", stepAmount: "1", madeToOrder: true},
	}
	customers := []demoCustomer{
		{name: "María Gómez", searchName: "maria gomez", phone: "3001234567",
			line1: "Calle 10 # 4-21", city: "Bogotá", postalCode: "110111"},
		{name: "José Pérez", searchName: "jose perez", phone: "3109876543",
			line1: "Carrera 7 # 45-09", city: "Medellín", postalCode: "050001"},
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_demo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Datos de arranque: usuario admin y catálogo de ejemplo\n")
	out.WriteString("-- Generado con cmd/seed\n\n")

	fmt.Fprintf(out, "INSERT INTO users (id, email, password_hash, name, role, status)\nVALUES ('%s', '%s', '%s', 'Administrador', 'admin', 'active')\nON CONFLICT (email) DO NOTHING;\n\n",
		uuid.NewString(), escapeSQL(email), string(hash))

	out.WriteString("INSERT INTO products (id, name, icon, unit, step_amount, made_to_order) VALUES\n")
	for i, p := range products {
		sep := ","
		if i == len(products)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', %s, %t)%s\n",
			uuid.NewString(), escapeSQL(p.name), p.icon, p.unit, p.stepAmount, p.madeToOrder, sep)
	}
	out.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")

	out.WriteString("INSERT INTO customers (id, name, search_name, phone, address_line1, city, postal_code) VALUES\n")
	for i, c := range customers {
		sep := ","
		if i == len(customers)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', '%s', '%s', '%s')%s\n",
			uuid.NewString(), escapeSQL(c.name), escapeSQL(c.searchName),
			c.phone, escapeSQL(c.line1), escapeSQL(c.city), c.postalCode, sep)
	}
	out.WriteString("ON CONFLICT (id) DO NOTHING;\n\n")

	// Un lote inicial por producto de inventario (los por encargo no llevan lotes)
	batches := 0
	out.WriteString("INSERT INTO stock_batches (id, product_id, amount_paid, quantity_purchased, date)\n")
	for _, p := range products {
		if p.madeToOrder {
			continue
		}
		fmt.Fprintf(out, "SELECT '%s', id, 50000, 10, now() FROM products WHERE name = '%s'\nUNION ALL\n",
			uuid.NewString(), escapeSQL(p.name))
		batches++
	}
	out.WriteString("SELECT NULL::uuid, NULL::uuid, 0, 0, now() WHERE false\nON CONFLICT (id) DO NOTHING;\n")

	fmt.Printf("Generado %s: 1 usuario, %d productos, %d clientes, %d lotes\n",
		outPath, len(products), len(customers), batches)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
