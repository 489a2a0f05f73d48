// Command seeduser creates the initial admin and comprador accounts.
// Intended for first-time setup; existing usernames are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"mrpproducao/internal/config"
	"mrpproducao/internal/infra"
	"mrpproducao/internal/model"
	"mrpproducao/internal/repository"
)

func main() {
	adminPass := flag.String("admin-password", "admin", "password for the admin account")
	compradorPass := flag.String("comprador-password", "comprador", "password for the comprador account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database: %v\n", err)
		os.Exit(1)
	}

	repo := repository.NewUsuarioRepository(db)
	ctx := context.Background()

	seeds := []struct {
		username, nome, tipo, password string
	}{
		{"admin", "Administrador", model.UsuarioTipoAdmin, *adminPass},
		{"comprador", "Comprador", model.UsuarioTipoComprador, *compradorPass},
	}

	for _, s := range seeds {
		if _, err := repo.FindByUsername(ctx, s.username); err == nil {
			fmt.Printf("user %q already exists, skipped\n", s.username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash: %v\n", err)
			os.Exit(1)
		}
		u := &model.Usuario{
			Username:     s.username,
			Nome:         s.nome,
			PasswordHash: string(hash),
			Tipo:         s.tipo,
			Ativo:        true,
		}
		if err := repo.Create(ctx, u); err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", s.username, err)
			os.Exit(1)
		}
		fmt.Printf("user %q created (%s)\n", s.username, s.tipo)
	}
}
