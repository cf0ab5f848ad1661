package services

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/mgarciapsic/clinica-backend/internal/dashboard/models"
)

type DashboardService struct {
	DB *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// validStatuses limits volume/revenue metrics to sessions that actually
// happened or are on the books.
const validStatuses = "('completed', 'scheduled')"

// GetDashboardData recomputes the full dashboard snapshot from source rows.
// There is no caching; any query failure aborts the whole computation.
func (svc *DashboardService) GetDashboardData(now time.Time) (models.DashboardData, error) {
	var d models.DashboardData

	curMonth, curYear, prevMonth, prevYear := MonthWindow(now)
	today := now.Format("2006-01-02")
	tomorrow := NextBusinessDay(now).Format("2006-01-02")

	statusCounts, err := svc.sessionAggregates(&d, curMonth, curYear, prevMonth, prevYear, today)
	if err != nil {
		return d, err
	}

	if err := svc.patientAggregates(&d, curMonth, curYear); err != nil {
		return d, err
	}
	if err := svc.weeklySessions(&d, curMonth, curYear); err != nil {
		return d, err
	}
	if err := svc.monthDistributions(&d, curMonth, curYear); err != nil {
		return d, err
	}
	if err := svc.upcomingSessions(&d, today, tomorrow, now.Format("15:04:05")); err != nil {
		return d, err
	}
	if err := svc.revenueAndClinicPerformance(&d, today); err != nil {
		return d, err
	}
	if err := svc.sessionsByClinic(&d); err != nil {
		return d, err
	}

	totalStatus := 0
	for _, c := range statusCounts {
		totalStatus += c.Count
	}
	d.SessionResult = BuildDistribution(statusCounts, totalStatus)

	return d, nil
}

// sessionAggregates fills the rapid KPIs from one wide conditional aggregate
// over sessions, returning the raw per-status counts for the
// status-distribution metric.
func (svc *DashboardService) sessionAggregates(d *models.DashboardData, curMonth, curYear, prevMonth, prevYear int, today string) ([]models.BucketCount, error) {
	q := `
		SELECT
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status IN ` + validStatuses + ` THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status IN ` + validStatuses + ` THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status IN ` + validStatuses + ` THEN s.price ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status IN ` + validStatuses + ` THEN s.price ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN DATE(s.session_date) = ? AND s.status IN ` + validStatuses + ` THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status = 'scheduled' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status = 'cancelled' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN MONTH(s.session_date) = ? AND YEAR(s.session_date) = ? AND s.status = 'no-show' THEN 1 ELSE 0 END), 0)
		FROM sessions s
		JOIN clinics c ON s.clinic_id = c.id
		WHERE s.is_active = 1`

	var completed, scheduled, cancelled, noShow int
	err := svc.DB.QueryRow(q,
		curMonth, curYear,
		prevMonth, prevYear,
		curMonth, curYear,
		prevMonth, prevYear,
		today,
		curMonth, curYear,
		curMonth, curYear,
		curMonth, curYear,
		curMonth, curYear,
	).Scan(
		&d.RapidKPI.SesionesMesActual,
		&d.RapidKPI.SesionesMesAnterior,
		&d.RapidKPI.IngresosMesActual,
		&d.RapidKPI.IngresosMesAnterior,
		&d.RapidKPI.SesionesHoy,
		&completed, &scheduled, &cancelled, &noShow,
	)
	if err != nil {
		return nil, err
	}

	d.RapidKPI.SesionesVariacion = Variance(float64(d.RapidKPI.SesionesMesActual), float64(d.RapidKPI.SesionesMesAnterior))
	d.RapidKPI.IngresosVariacion = Variance(d.RapidKPI.IngresosMesActual, d.RapidKPI.IngresosMesAnterior)
	d.RapidKPI.IngresosMesActual = round2(d.RapidKPI.IngresosMesActual)
	d.RapidKPI.IngresosMesAnterior = round2(d.RapidKPI.IngresosMesAnterior)

	return []models.BucketCount{
		{Label: "completed", Count: completed},
		{Label: "scheduled", Count: scheduled},
		{Label: "cancelled", Count: cancelled},
		{Label: "no-show", Count: noShow},
	}, nil
}

// patientAggregates fills active/new counts and the age distribution from
// one conditional aggregate over active patients.
func (svc *DashboardService) patientAggregates(d *models.DashboardData, curMonth, curYear int) error {
	q := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN MONTH(p.created_at) = ? AND YEAR(p.created_at) = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN TIMESTAMPDIFF(YEAR, p.birth_date, CURDATE()) BETWEEN 18 AND 25 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN TIMESTAMPDIFF(YEAR, p.birth_date, CURDATE()) BETWEEN 26 AND 35 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN TIMESTAMPDIFF(YEAR, p.birth_date, CURDATE()) BETWEEN 36 AND 45 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN TIMESTAMPDIFF(YEAR, p.birth_date, CURDATE()) > 45 THEN 1 ELSE 0 END), 0)
		FROM patients p
		WHERE p.is_active = 1`

	var a1825, a2635, a3645, a45 int
	err := svc.DB.QueryRow(q, curMonth, curYear).Scan(
		&d.RapidKPI.PacientesActivos,
		&d.RapidKPI.PacientesNuevosMes,
		&a1825, &a2635, &a3645, &a45,
	)
	if err != nil {
		return err
	}

	d.AgeDistribution = dropZeroBuckets([]models.BucketCount{
		{Label: "18-25", Count: a1825},
		{Label: "26-35", Count: a2635},
		{Label: "36-45", Count: a3645},
		{Label: ">45", Count: a45},
	})
	return nil
}

// weeklySessions buckets the current month's valid sessions by week of
// month, computed as WEEK(date,1) - WEEK(first_of_month,1) + 1.
func (svc *DashboardService) weeklySessions(d *models.DashboardData, curMonth, curYear int) error {
	q := `
		SELECT
			WEEK(s.session_date, 1) - WEEK(DATE_SUB(s.session_date, INTERVAL DAYOFMONTH(s.session_date) - 1 DAY), 1) + 1 AS week_num,
			COUNT(*)
		FROM sessions s
		WHERE s.is_active = 1
		  AND MONTH(s.session_date) = ? AND YEAR(s.session_date) = ?
		  AND s.status IN ` + validStatuses + `
		GROUP BY week_num
		ORDER BY week_num`

	rows, err := svc.DB.Query(q, curMonth, curYear)
	if err != nil {
		return err
	}
	defer rows.Close()

	d.WeeklySessions = []models.BucketCount{}
	for rows.Next() {
		var week, count int
		if err := rows.Scan(&week, &count); err != nil {
			return err
		}
		if count == 0 {
			continue
		}
		d.WeeklySessions = append(d.WeeklySessions, models.BucketCount{
			Label: "Semana " + strconv.Itoa(week),
			Count: count,
		})
	}
	return rows.Err()
}

// monthDistributions computes the payment-method and modality distributions
// over the current month's valid sessions.
func (svc *DashboardService) monthDistributions(d *models.DashboardData, curMonth, curYear int) error {
	for _, dist := range []struct {
		column string
		target *[]models.DistributionEntry
	}{
		{"payment_method", &d.PaymentMethods},
		{"mode", &d.DistributionByMode},
	} {
		q := `
			SELECT s.` + dist.column + `, COUNT(*)
			FROM sessions s
			WHERE s.is_active = 1
			  AND MONTH(s.session_date) = ? AND YEAR(s.session_date) = ?
			  AND s.status IN ` + validStatuses + `
			GROUP BY s.` + dist.column

		rows, err := svc.DB.Query(q, curMonth, curYear)
		if err != nil {
			return err
		}

		counts := []models.BucketCount{}
		total := 0
		for rows.Next() {
			var label sql.NullString
			var count int
			if err := rows.Scan(&label, &count); err != nil {
				rows.Close()
				return err
			}
			if label.Valid && label.String != "" {
				counts = append(counts, models.BucketCount{Label: label.String, Count: count})
			}
			total += count
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		*dist.target = BuildDistribution(counts, total)
	}
	return nil
}

// upcomingSessions fetches today's and the next business day's scheduled
// sessions in one query and splits them in memory.
func (svc *DashboardService) upcomingSessions(d *models.DashboardData, today, tomorrow, nowClock string) error {
	q := `
		SELECT s.id, pt.name, c.name, DATE_FORMAT(s.session_date, '%Y-%m-%d'), s.start_time, s.mode
		FROM sessions s
		JOIN patients pt ON s.patient_id = pt.id
		JOIN clinics c ON s.clinic_id = c.id
		WHERE s.is_active = 1
		  AND s.status = 'scheduled'
		  AND DATE(s.session_date) IN (?, ?)
		ORDER BY s.session_date ASC, s.start_time ASC`

	rows, err := svc.DB.Query(q, today, tomorrow)
	if err != nil {
		return err
	}
	defer rows.Close()

	all := []models.UpcomingSession{}
	for rows.Next() {
		var u models.UpcomingSession
		if err := rows.Scan(&u.ID, &u.PatientName, &u.ClinicName, &u.Date, &u.StartTime, &u.Mode); err != nil {
			return err
		}
		all = append(all, u)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	d.TodayUpcomingSession, d.TomorrowSessions = splitUpcoming(all, today, tomorrow, nowClock)
	return nil
}

// splitUpcoming partitions scheduled rows into today's remaining sessions and
// tomorrow's list. A session still counts as upcoming only when its HH:MM:SS
// start time is strictly after nowClock, so both values must carry second
// precision. The nearest next appointment is today's first upcoming session,
// falling back to tomorrow's first.
func splitUpcoming(all []models.UpcomingSession, today, tomorrow, nowClock string) (models.TodayUpcomingSessions, []models.UpcomingSession) {
	todayUpcoming := []models.UpcomingSession{}
	tomorrowList := []models.UpcomingSession{}
	for _, u := range all {
		switch u.Date {
		case today:
			if u.StartTime > nowClock {
				todayUpcoming = append(todayUpcoming, u)
			}
		case tomorrow:
			tomorrowList = append(tomorrowList, u)
		}
	}

	result := models.TodayUpcomingSessions{Sessions: todayUpcoming}
	if len(todayUpcoming) > 0 {
		result.NextAppointment = &todayUpcoming[0]
	} else if len(tomorrowList) > 0 {
		result.NextAppointment = &tomorrowList[0]
	}
	return result, tomorrowList
}

// revenueAndClinicPerformance issues the trailing-12-month revenue and the
// per-clinic aggregate as a single UNION result set distinguished by a
// data_type discriminator column.
func (svc *DashboardService) revenueAndClinicPerformance(d *models.DashboardData, today string) error {
	q := `
		SELECT 'monthly' AS data_type, DATE_FORMAT(s.session_date, '%Y-%m') AS label, 0 AS clinic_id,
		       COUNT(*) AS session_count, COALESCE(SUM(s.price), 0) AS total_revenue, 0 AS avg_revenue
		FROM sessions s
		WHERE s.is_active = 1
		  AND s.status IN ` + validStatuses + `
		  AND s.session_date >= DATE_SUB(?, INTERVAL 12 MONTH)
		GROUP BY DATE_FORMAT(s.session_date, '%Y-%m')
		UNION ALL
		SELECT 'clinic' AS data_type, c.name AS label, c.id AS clinic_id,
		       COUNT(s.id) AS session_count, COALESCE(SUM(s.price), 0) AS total_revenue, COALESCE(AVG(s.price), 0) AS avg_revenue
		FROM clinics c
		LEFT JOIN sessions s ON s.clinic_id = c.id AND s.is_active = 1 AND s.status IN ` + validStatuses + `
		GROUP BY c.id, c.name
		ORDER BY data_type, label`

	rows, err := svc.DB.Query(q, today)
	if err != nil {
		return err
	}
	defer rows.Close()

	d.MonthlyRevenue = []models.MonthlyRevenue{}
	d.ClinicPerformance = []models.ClinicPerformance{}
	for rows.Next() {
		var dataType, label string
		var clinicID, sessionCount int
		var totalRevenue, avgRevenue float64
		if err := rows.Scan(&dataType, &label, &clinicID, &sessionCount, &totalRevenue, &avgRevenue); err != nil {
			return err
		}
		switch dataType {
		case "monthly":
			d.MonthlyRevenue = append(d.MonthlyRevenue, models.MonthlyRevenue{
				Month:   label,
				Revenue: round2(totalRevenue),
			})
		case "clinic":
			d.ClinicPerformance = append(d.ClinicPerformance, models.ClinicPerformance{
				ClinicID:     clinicID,
				ClinicName:   label,
				SessionCount: sessionCount,
				TotalRevenue: round2(totalRevenue),
				AvgRevenue:   round2(avgRevenue),
			})
		}
	}
	return rows.Err()
}

// sessionsByClinic builds the per-clinic session index from a flat
// one-to-many join grouped in memory by clinic id.
func (svc *DashboardService) sessionsByClinic(d *models.DashboardData) error {
	q := `
		SELECT c.id, c.name, s.id, DATE_FORMAT(s.session_date, '%Y-%m-%d')
		FROM clinics c
		JOIN sessions s ON s.clinic_id = c.id AND s.is_active = 1
		ORDER BY c.id ASC, s.session_date ASC, s.id ASC`

	rows, err := svc.DB.Query(q)
	if err != nil {
		return err
	}
	defer rows.Close()

	d.SessionsByClinic = []models.ClinicSessionIndex{}
	for rows.Next() {
		var clinicID, sessionID int
		var clinicName, date string
		if err := rows.Scan(&clinicID, &clinicName, &sessionID, &date); err != nil {
			return err
		}
		n := len(d.SessionsByClinic)
		if n == 0 || d.SessionsByClinic[n-1].ClinicID != clinicID {
			d.SessionsByClinic = append(d.SessionsByClinic, models.ClinicSessionIndex{
				ClinicID:   clinicID,
				ClinicName: clinicName,
				Sessions:   []models.SessionEntry{},
			})
			n++
		}
		d.SessionsByClinic[n-1].Sessions = append(d.SessionsByClinic[n-1].Sessions, models.SessionEntry{
			ID:   sessionID,
			Date: date,
		})
	}
	return rows.Err()
}
