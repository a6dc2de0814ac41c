package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

const testMetadata = `Nombre_archivo,Coordenadas,Duracion_video,Fecha_inicio,Fecha_fin,Comentarios,Operador
Fracc kusamil C2.avi,"21.1619, -86.8515",00:30:00,30/06/2025 08:00:00,30/06/2025 08:30:00,,Ana
Filtro merida C2.avi,"21.1700, -86.8300",,01/07/2025 09:00:00,02/07/2025 10:00:00,Lluvia ligera,
Sin ubicacion.avi,invalid,00:10:00,,,,
`

const testCounts = `line_id,class,count,direction
1,car,10,in
1,truck,2,in
2,car,abc,out
2,person,3,out
ALL,car,999,
`

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) failed: %v", name, err)
	}
	return path
}
