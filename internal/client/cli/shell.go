package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gestdata/registrosgo/internal/registro"
)

// Shell runs the interactive loop. Command failures are printed and the
// loop continues; nothing here is fatal.
func (a *App) Shell(ctx context.Context) {
	log.Println("Cliente de registros (escriba 'help' para ver los comandos)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "registros (%d)> ", a.store.Len())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Comandos: list, add, import <archivo>, commit, refresh, delete <id>, clear, export <archivo>, template <archivo>, login <usuario>, exit")
		case "list", "l":
			a.List(ctx)
		case "add":
			err = a.addInteractive(ctx, scanner)
		case "import":
			if len(args) != 1 {
				err = fmt.Errorf("uso: import <archivo.xlsx>")
				break
			}
			err = a.Import(ctx, args[0])
		case "commit", "process":
			err = a.Commit(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "delete":
			if len(args) != 1 {
				err = fmt.Errorf("uso: delete <id>")
				break
			}
			err = a.Delete(ctx, args[0])
		case "clear":
			if !confirm(a, scanner, "¿Eliminar todos los registros?") {
				break
			}
			err = a.Clear(ctx)
		case "export":
			if len(args) != 1 {
				err = fmt.Errorf("uso: export <archivo.xlsx>")
				break
			}
			err = a.Export(ctx, args[0])
		case "template":
			if len(args) != 1 {
				err = fmt.Errorf("uso: template <archivo.xlsx>")
				break
			}
			err = a.Template(args[0])
		case "login":
			if len(args) != 1 {
				err = fmt.Errorf("uso: login <usuario>")
				break
			}
			password := prompt(a, scanner, "Contraseña")
			err = a.Login(ctx, args[0], password)
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "Comando desconocido: %s\n", cmd)
		}

		if err != nil {
			log.Printf("❌ %v", err)
		}
	}
}

// addInteractive prompts for each field and stages the draft
func (a *App) addInteractive(ctx context.Context, scanner *bufio.Scanner) error {
	draft := registro.Record{
		Proyecto:        prompt(a, scanner, "Proyecto"),
		CentroOperacion: prompt(a, scanner, "Centro de operación"),
		Cargo:           prompt(a, scanner, "Cargo"),
		Cedula:          prompt(a, scanner, "Cédula"),
		Nombre:          prompt(a, scanner, "Nombre"),
		Numero:          prompt(a, scanner, "Número"),
		Status:          prompt(a, scanner, "Status (SI/NO)"),
	}
	return a.Add(ctx, draft)
}

func prompt(a *App, scanner *bufio.Scanner, label string) string {
	fmt.Fprintf(a.out, "%s: ", label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func confirm(a *App, scanner *bufio.Scanner, question string) bool {
	answer := prompt(a, scanner, question+" (s/n)")
	return strings.EqualFold(answer, "s") || strings.EqualFold(answer, "si")
}
