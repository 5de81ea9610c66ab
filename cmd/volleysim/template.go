package main

const configTemplate = `# Volleyball Season Configuration
# ===============================
# This file describes a league's regular season. volleysim reads it to build
# standings, ratings and the playoff bracket.

# League picks the playoff format.
#   2lig: sixteen regular-season groups named "1. GR" .. "16. GR". The top
#         two of each group are seeded into eight quarterfinal groups (A-H),
#         then four semifinal groups (A-D) and two final groups (1, 2).
#   1lig: two regular-season groups A and B. The top four of each are
#         crossed into semifinal groups I and II, then one final group.
league: 1lig

# Groups and their current records. Team names must be unique across all
# groups; names are compared without case or accents, so "Izmir" and
# "İZMİR" are the same team.
groups:
  - name: A
    teams:
      - {name: "Ankara SK",   played: 6, wins: 5, points: 15, sets_won: 16, sets_lost: 5}
      - {name: "Bursa VK",    played: 6, wins: 4, points: 12, sets_won: 14, sets_lost: 8}
      - {name: "Konya BSK",   played: 6, wins: 2, points: 6,  sets_won: 9,  sets_lost: 13}
      - {name: "Sakarya VK",  played: 6, wins: 1, points: 3,  sets_won: 5,  sets_lost: 16}
  - name: B
    teams:
      - {name: "İzmir SK",    played: 6, wins: 6, points: 17, sets_won: 18, sets_lost: 4}
      - {name: "Antalya GSK", played: 6, wins: 3, points: 9,  sets_won: 11, sets_lost: 11}
      - {name: "Samsun VK",   played: 6, wins: 2, points: 7,  sets_won: 10, sets_lost: 12}
      - {name: "Trabzon SK",  played: 6, wins: 1, points: 3,  sets_won: 4,  sets_lost: 16}

# Matches feed the rating model. A match with a score counts as played
# unless "played: false" is set. Scores are in sets, home first: 3-0, 3-1,
# 3-2, 2-3, 1-3 or 0-3. Dates are YYYY-MM-DD and times are 24-hour.
matches:
  - {home: "Ankara SK", away: "Bursa VK", group: A, score: "3-1", date: "2025-11-02", time: "14:00"}
  - {home: "İzmir SK", away: "Samsun VK", group: B, score: "3-0", date: "2025-11-02", time: "16:00"}
  - {home: "Bursa VK", away: "Ankara SK", group: A, date: "2026-01-18", time: "14:00"}
  - {home: "Samsun VK", away: "İzmir SK", group: B, date: "2026-01-18", time: "16:00"}

# Season overrides are hypothetical results for unplayed matches, keyed
# "Home|||Away". They move the live standings and the bracket seeding.
season_overrides:
  "Bursa VK|||Ankara SK": "3-2"

# Playoff overrides are hypothetical results per stage, keyed by match id
# "{stage}-{group}-{home}-{away}". Run "volleysim bracket" to list the ids.
# Unknown ids and malformed scores are ignored and reported.
overrides:
  semi:
    "semi-I-Ankara SK-Antalya GSK": "3-1"
`
