package models

// DashboardData is the full dashboard snapshot returned by
// GET /api/dashboard/kpis. Every call recomputes it from source rows.
type DashboardData struct {
	RapidKPI             RapidKPIData          `json:"RapidKPIData"`
	AgeDistribution      []BucketCount         `json:"AgeDistributionData"`
	ClinicPerformance    []ClinicPerformance   `json:"ClinicPerformanceData"`
	DistributionByMode   []DistributionEntry   `json:"DistributionByModalityData"`
	MonthlyRevenue       []MonthlyRevenue      `json:"MonthlyRevenueData"`
	PaymentMethods       []DistributionEntry   `json:"PaymentMethodsData"`
	SessionResult        []DistributionEntry   `json:"SessionResultData"`
	SessionsByClinic     []ClinicSessionIndex  `json:"SessionsByClinicData"`
	TodayUpcomingSession TodayUpcomingSessions `json:"TodayUpcomingSessionsData"`
	TomorrowSessions     []UpcomingSession     `json:"TomorrowSessionsData"`
	WeeklySessions       []BucketCount         `json:"WeeklySessionsData"`
}

// RapidKPIData carries the headline numbers and their month-over-month
// variances.
type RapidKPIData struct {
	SesionesMesActual   int     `json:"sesiones_mes_actual"`
	SesionesMesAnterior int     `json:"sesiones_mes_anterior"`
	SesionesVariacion   float64 `json:"sesiones_variacion"`
	IngresosMesActual   float64 `json:"ingresos_mes_actual"`
	IngresosMesAnterior float64 `json:"ingresos_mes_anterior"`
	IngresosVariacion   float64 `json:"ingresos_variacion"`
	SesionesHoy         int     `json:"sesiones_hoy"`
	PacientesActivos    int     `json:"pacientes_activos"`
	PacientesNuevosMes  int     `json:"pacientes_nuevos_mes"`
}

// BucketCount is a labeled count; zero-count buckets never appear.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DistributionEntry is a labeled count with its share of the valid total.
// Zero-count entries are omitted from every distribution list.
type DistributionEntry struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ClinicPerformance struct {
	ClinicID     int     `json:"clinic_id"`
	ClinicName   string  `json:"clinic_name"`
	SessionCount int     `json:"session_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgRevenue   float64 `json:"avg_revenue"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ClinicSessionIndex lists every session belonging to a clinic, built from a
// flat join grouped in memory.
type ClinicSessionIndex struct {
	ClinicID   int            `json:"clinic_id"`
	ClinicName string         `json:"clinic_name"`
	Sessions   []SessionEntry `json:"sessions"`
}

type SessionEntry struct {
	ID   int    `json:"id"`
	Date string `json:"date"`
}

type UpcomingSession struct {
	ID          int    `json:"id"`
	PatientName string `json:"patient_name"`
	ClinicName  string `json:"clinic_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	Mode        string `json:"mode"`
}

// TodayUpcomingSessions is today's remaining schedule plus the single nearest
// next appointment (today's first upcoming, falling back to tomorrow's).
type TodayUpcomingSessions struct {
	Sessions        []UpcomingSession `json:"sessions"`
	NextAppointment *UpcomingSession  `json:"next_appointment"`
}
