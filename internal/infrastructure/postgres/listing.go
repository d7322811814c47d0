package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
)

// builder constructor de consultas con placeholders $n de PostgreSQL.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ilike envuelve un término de búsqueda para coincidencia parcial.
func ilike(term string) string {
	return "%" + term + "%"
}

// adjustedDay resuelve el día calendario local (UTC-5) de un instante ISO:
// toma la parte de fecha y, si la hora UTC más cinco desborda el día, avanza
// el día de la fecha sin normalizar el mes.
func adjustedDay(createdAt string) string {
	parts := strings.SplitN(createdAt, "T", 2)
	day := parts[0]
	if len(parts) < 2 || len(parts[1]) < 2 {
		return day
	}
	hour, err := strconv.Atoi(parts[1][:2])
	if err != nil {
		return day
	}
	if hour+5 >= 24 {
		seg := strings.Split(day, "-")
		if len(seg) == 3 {
			if d, err := strconv.Atoi(seg[2]); err == nil {
				day = fmt.Sprintf("%s-%s-%02d", seg[0], seg[1], d+1)
			}
		}
	}
	return day
}

// createdAtBucket condición que acota una columna timestamp al día calendario
// UTC-5 del instante recibido.
func createdAtBucket(column, createdAt string) squirrel.Sqlizer {
	day := adjustedDay(createdAt)
	return squirrel.Expr(
		fmt.Sprintf("DATE(%s - INTERVAL '5 hours') BETWEEN ?::TIMESTAMP AND ?::TIMESTAMP", column),
		day+" 00:00:00",
		day+" 23:59:59",
	)
}

// paginate aplica LIMIT/OFFSET con página base cero (skip = limit*page).
func paginate(q squirrel.SelectBuilder, limit, page int) squirrel.SelectBuilder {
	if limit <= 0 {
		return q
	}
	if page < 0 {
		page = 0
	}
	return q.Limit(uint64(limit)).Offset(uint64(limit * page))
}
